package main

import (
	"github.com/charmbracelet/log"

	"chosenoffset.com/bombfield/internal/game"
	ebitenrender "chosenoffset.com/bombfield/internal/render/ebiten"
	"chosenoffset.com/bombfield/internal/script"
	"chosenoffset.com/bombfield/internal/sprite"
	"chosenoffset.com/bombfield/internal/ui/hud"
	"chosenoffset.com/bombfield/internal/world/level"
)

func main() {
	screenWidth := 960
	screenHeight := 640

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	// A missing or invalid level is fatal: the game never starts with a
	// partial world.
	lvl, err := level.Load("data/level.json", loader)
	if err != nil {
		log.Fatalf("failed to load level: %v", err)
	}
	log.Infof("loaded level: %dx%d tiles, %d layers, %d tilesets",
		lvl.Data.Width, lvl.Data.Height, len(lvl.Data.Layers), len(lvl.Tilesets))

	scripts := script.NewEngine()
	if err := scripts.LoadAll("data/scripts"); err != nil {
		log.Warnf("no scripts loaded: %v", err)
	} else {
		log.Infof("loaded %d scripts", scripts.Len())
	}

	sprites := &game.DirSpriteLoader{Loader: loader, Dir: "data/sprites"}

	g := game.New(renderer, inputMgr, sprites, lvl, screenWidth, screenHeight)
	g.Scripts = scripts
	g.GameHUD = hud.New()

	playerSprite, err := sprite.Load(loader, "data/sprites/player.json", "data/sprites")
	if err != nil {
		log.Fatalf("failed to load player sprite: %v", err)
	}
	player := game.NewPlayer(g.Objects.NextID(), lvl.PixelWidth()/2, lvl.PixelHeight()/2, playerSprite)
	if err := g.SetPlayer(player); err != nil {
		log.Fatalf("failed to register player: %v", err)
	}

	engine.SetWindowSize(screenWidth, screenHeight)
	engine.SetWindowTitle("Bombfield")
	engine.SetWindowResizable(true)

	log.Info("starting game")
	if err := engine.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
