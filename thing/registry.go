package thing

import (
	"fmt"
	"sync"
)

// Logger defines the logging interface used by the Registry. A
// *slog.Logger satisfies it directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry is an in-memory catalogue of things keyed by UID.
//
// All public methods are thread-safe. Because things are immutable, the
// registry hands out stored pointers directly; an Update swaps in a new
// instance rather than mutating the old one.
type Registry struct {
	mu     sync.RWMutex
	things map[string]*Thing
	logger Logger
}

// NewRegistry creates an empty thing registry.
func NewRegistry() *Registry {
	return &Registry{
		things: make(map[string]*Thing),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry. Safe to call while other
// goroutines use the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Create adds a new thing. Returns ErrThingExists if a thing with the
// same UID is already registered.
func (r *Registry) Create(t *Thing) error {
	if t == nil {
		return ErrNilThing
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := t.uid.String()
	if _, ok := r.things[key]; ok {
		return fmt.Errorf("%w: %s", ErrThingExists, key)
	}
	r.things[key] = t

	r.logger.Info("thing created", "uid", key, "kind", t.kind.String(), "label", t.label)
	return nil
}

// Get retrieves a thing by UID. Returns ErrThingNotFound if the thing
// does not exist.
func (r *Registry) Get(uid ThingUID) (*Thing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.things[uid.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrThingNotFound, uid)
	}
	return t, nil
}

// List returns all registered things in no particular order.
func (r *Registry) List() []*Thing {
	r.mu.RLock()
	defer r.mu.RUnlock()

	things := make([]*Thing, 0, len(r.things))
	for _, t := range r.things {
		things = append(things, t)
	}
	return things
}

// ListByBridge returns all things attached to the given bridge UID.
func (r *Registry) ListByBridge(bridgeUID ThingUID) []*Thing {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var things []*Thing
	for _, t := range r.things {
		if t.bridgeUID != nil && *t.bridgeUID == bridgeUID {
			things = append(things, t)
		}
	}
	return things
}

// Remove deletes a thing and returns the removed instance. Returns
// ErrThingNotFound if the thing does not exist.
func (r *Registry) Remove(uid ThingUID) (*Thing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := uid.String()
	t, ok := r.things[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrThingNotFound, key)
	}
	delete(r.things, key)

	r.logger.Info("thing removed", "uid", key)
	return t, nil
}

// Update merges a partial update into the stored thing, swaps the merged
// instance in and returns it. The previous instance is no longer
// reachable from the registry; callers still holding it should discard
// it. Returns ErrThingNotFound if the thing does not exist, or the
// wrapped merge error.
func (r *Registry) Update(uid ThingUID, dto ThingDTO) (*Thing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := uid.String()
	existing, ok := r.things[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrThingNotFound, key)
	}

	merged, err := Merge(existing, dto)
	if err != nil {
		return nil, fmt.Errorf("merging %s: %w", key, err)
	}
	r.things[key] = merged

	r.logger.Info("thing updated", "uid", key, "changed", !Equal(existing, merged))
	return merged, nil
}
