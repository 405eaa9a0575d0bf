package web

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/fitform/fitform/internal/config"
	"github.com/fitform/fitform/internal/errors"
	"github.com/fitform/fitform/internal/ops"
	"github.com/fitform/fitform/internal/synth"
	"github.com/fitform/fitform/internal/wardrobe"
)

// Registry tracks the live try-on sessions, one Studio each, keyed by a
// ULID handed to the browser. Sessions live until deleted or the process
// exits; nothing is persisted.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*ops.Studio

	catalog *wardrobe.Catalog
	synth   synth.Client
	cfg     *config.Config
}

// NewRegistry creates an empty Registry sharing one catalog and synthesis
// client across all sessions.
func NewRegistry(catalog *wardrobe.Catalog, client synth.Client, cfg *config.Config) *Registry {
	return &Registry{
		sessions: make(map[string]*ops.Studio),
		catalog:  catalog,
		synth:    client,
		cfg:      cfg,
	}
}

// Create mints a new session and returns its id.
func (r *Registry) Create() (string, *ops.Studio, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", nil, errors.NewInternal(err)
	}

	st := ops.NewStudio(r.catalog, r.synth, r.cfg)

	r.mu.Lock()
	r.sessions[id.String()] = st
	r.mu.Unlock()

	return id.String(), st, nil
}

// Get returns the session with the given id.
func (r *Registry) Get(id string) (*ops.Studio, error) {
	r.mu.RLock()
	st, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewNotFound("session", id)
	}
	return st, nil
}

// Delete removes the session with the given id. Deleting an unknown id is
// not an error.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
