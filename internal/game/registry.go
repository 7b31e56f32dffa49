package game

import (
	"fmt"
	"time"
)

// Registry owns all live game objects, keyed by unique id. Objects are
// indexed once by capability when added, so iteration never needs run-time
// type inspection.
//
// The capability accessors return the live maps. Callers must not add or
// remove entries while ranging over them; collect the ids first, then remove
// after the pass.
type Registry struct {
	nextID      int
	objects     map[int]GameObject
	renderables map[int]Renderable
	temporaries map[int]Temporary
	powerUps    map[int]*PowerUp
}

// NewRegistry creates an empty object registry.
func NewRegistry() *Registry {
	return &Registry{
		objects:     make(map[int]GameObject),
		renderables: make(map[int]Renderable),
		temporaries: make(map[int]Temporary),
		powerUps:    make(map[int]*PowerUp),
	}
}

// NextID returns a fresh object id. Ids are monotonic and never reused.
func (r *Registry) NextID() int {
	r.nextID++
	return r.nextID
}

// Add inserts an object under its id and indexes it by capability.
// Inserting an id that is already present is an error.
func (r *Registry) Add(obj GameObject) error {
	id := obj.ID()
	if _, exists := r.objects[id]; exists {
		return fmt.Errorf("object id %d already registered", id)
	}
	r.objects[id] = obj

	if rend, ok := obj.(Renderable); ok {
		r.renderables[id] = rend
	}
	if tmp, ok := obj.(Temporary); ok {
		r.temporaries[id] = tmp
	}
	if pu, ok := obj.(*PowerUp); ok {
		r.powerUps[id] = pu
	}
	return nil
}

// Remove deletes an object and all its capability entries. It returns the
// removed object, or false if the id was not present.
func (r *Registry) Remove(id int) (GameObject, bool) {
	obj, ok := r.objects[id]
	if !ok {
		return nil, false
	}
	delete(r.objects, id)
	delete(r.renderables, id)
	delete(r.temporaries, id)
	delete(r.powerUps, id)
	return obj, true
}

// Get returns the object registered under id.
func (r *Registry) Get(id int) (GameObject, bool) {
	obj, ok := r.objects[id]
	return obj, ok
}

// Len returns the number of live objects.
func (r *Registry) Len() int {
	return len(r.objects)
}

// Objects returns the live object map.
func (r *Registry) Objects() map[int]GameObject {
	return r.objects
}

// Renderables returns the live map of renderable objects.
func (r *Registry) Renderables() map[int]Renderable {
	return r.renderables
}

// Temporaries returns the live map of objects with a time-to-live.
func (r *Registry) Temporaries() map[int]Temporary {
	return r.temporaries
}

// PowerUps returns the live map of uncollected power-ups.
func (r *Registry) PowerUps() map[int]*PowerUp {
	return r.powerUps
}

// ExpiredIDs collects the ids of all temporaries whose time-to-live has
// elapsed at the given instant. The caller removes them afterwards.
func (r *Registry) ExpiredIDs(now time.Time) []int {
	var expired []int
	for id, tmp := range r.temporaries {
		if tmp.Expired(now) {
			expired = append(expired, id)
		}
	}
	return expired
}
