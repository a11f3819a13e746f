// Package objmodel holds helpers plugin packages use against the host
// object model: global identifiers, relationship containers, optional
// plugin dependencies and impact graph queries.
//
// The host framework is represented by small interfaces so the helpers can
// run against any implementation; GUIDTable is an in-memory GUIDManager.
package objmodel

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Object is anything stored in the host object model
type Object interface {
	// ID returns the object's id within its container
	ID() string
}

// GUIDManager maps objects to global identifiers and back
type GUIDManager interface {
	GUID(obj Object) (string, error)
	Object(guid string) (Object, error)
}

var (
	// ErrNoGUID indicates an object has no global identifier
	ErrNoGUID = errors.New("object has no global identifier")

	// ErrUnknownGUID indicates a global identifier resolves to nothing
	ErrUnknownGUID = errors.New("unknown global identifier")
)

// GUID returns the global identifier of obj
func GUID(manager GUIDManager, obj Object) (string, error) {
	return manager.GUID(obj)
}

// GUIDTable is an in-memory GUIDManager. Identifiers are minted on first
// request with uuid.NewString. Safe for concurrent use.
type GUIDTable struct {
	mu      sync.RWMutex
	guids   map[Object]string
	objects map[string]Object
}

// NewGUIDTable creates an empty table
func NewGUIDTable() *GUIDTable {
	return &GUIDTable{
		guids:   make(map[Object]string),
		objects: make(map[string]Object),
	}
}

// GUID returns the identifier of obj, minting one if needed.
// obj must be comparable (typically a pointer).
func (t *GUIDTable) GUID(obj Object) (string, error) {
	if obj == nil {
		return "", ErrNoGUID
	}

	t.mu.RLock()
	guid, ok := t.guids[obj]
	t.mu.RUnlock()
	if ok {
		return guid, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if guid, ok := t.guids[obj]; ok {
		return guid, nil
	}
	guid = uuid.NewString()
	t.guids[obj] = guid
	t.objects[guid] = obj
	return guid, nil
}

// Register stores obj under an existing identifier
func (t *GUIDTable) Register(guid string, obj Object) error {
	if _, err := uuid.Parse(guid); err != nil {
		return fmt.Errorf("invalid guid %q: %w", guid, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.guids[obj]; ok {
		delete(t.objects, old)
	}
	if prev, ok := t.objects[guid]; ok && prev != obj {
		delete(t.guids, prev)
	}
	t.guids[obj] = guid
	t.objects[guid] = obj
	return nil
}

// Object resolves an identifier
func (t *GUIDTable) Object(guid string) (Object, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	obj, ok := t.objects[guid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGUID, guid)
	}
	return obj, nil
}
