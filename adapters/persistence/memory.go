package persistence

import (
	"context"
	"sync"

	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/social"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

// memoryEventRepo keeps events in a map. Every value crossing the boundary
// is a deep copy so callers cannot mutate stored state.
type memoryEventRepo struct {
	mu     sync.RWMutex
	events map[string]*event.Event
}

func NewMemoryEventRepo() event.Repository {
	return &memoryEventRepo{events: make(map[string]*event.Event)}
}

func (r *memoryEventRepo) List(_ context.Context) ([]*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*event.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Clone())
	}
	event.SortByDateDesc(out)
	return out, nil
}

func (r *memoryEventRepo) FindByID(_ context.Context, id string) (*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return nil, apperror.NewNotFound("event", id)
	}
	return e.Clone(), nil
}

func (r *memoryEventRepo) Put(_ context.Context, e *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[e.ID] = e.Clone()
	return nil
}

func (r *memoryEventRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.events, id)
	return nil
}

type memoryProfileRepo struct {
	mu   sync.RWMutex
	data *profile.Data
}

func NewMemoryProfileRepo() profile.Repository {
	return &memoryProfileRepo{}
}

func (r *memoryProfileRepo) Get(_ context.Context) (*profile.Data, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil {
		return nil, notFoundDocument(profileDocumentKey, profile.ErrProfileNotFound)
	}
	return r.data.Clone(), nil
}

func (r *memoryProfileRepo) Put(_ context.Context, d *profile.Data) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = d.Clone()
	return nil
}

type memorySocialRepo struct {
	mu    sync.RWMutex
	links []social.Link
	set   bool
}

func NewMemorySocialRepo() social.Repository {
	return &memorySocialRepo{}
}

func (r *memorySocialRepo) Get(_ context.Context) ([]social.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.set {
		return nil, notFoundDocument(socialsDocumentKey, social.ErrSocialsNotFound)
	}
	out := social.Clone(r.links)
	if out == nil {
		out = []social.Link{}
	}
	return out, nil
}

func (r *memorySocialRepo) Put(_ context.Context, links []social.Link) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links = social.Clone(links)
	r.set = true
	return nil
}
