package content

import (
	"context"
	"sync"

	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/social"
)

// flakyEventRepo wraps a memory repo, counts calls and can be switched to
// fail every call.
type flakyEventRepo struct {
	event.Repository
	mu    sync.Mutex
	fail  error
	calls int
}

func (r *flakyEventRepo) before() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.fail
}

func (r *flakyEventRepo) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *flakyEventRepo) List(ctx context.Context) ([]*event.Event, error) {
	if err := r.before(); err != nil {
		return nil, err
	}
	return r.Repository.List(ctx)
}

func (r *flakyEventRepo) FindByID(ctx context.Context, id string) (*event.Event, error) {
	if err := r.before(); err != nil {
		return nil, err
	}
	return r.Repository.FindByID(ctx, id)
}

func (r *flakyEventRepo) Put(ctx context.Context, e *event.Event) error {
	if err := r.before(); err != nil {
		return err
	}
	return r.Repository.Put(ctx, e)
}

func (r *flakyEventRepo) Delete(ctx context.Context, id string) error {
	if err := r.before(); err != nil {
		return err
	}
	return r.Repository.Delete(ctx, id)
}

type flakyProfileRepo struct {
	profile.Repository
	failGet error
	failPut error
	puts    int
}

func (r *flakyProfileRepo) Get(ctx context.Context) (*profile.Data, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	return r.Repository.Get(ctx)
}

func (r *flakyProfileRepo) Put(ctx context.Context, d *profile.Data) error {
	r.puts++
	if r.failPut != nil {
		return r.failPut
	}
	return r.Repository.Put(ctx, d)
}

type flakySocialRepo struct {
	social.Repository
	fail error
}

func (r *flakySocialRepo) Get(ctx context.Context) ([]social.Link, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	return r.Repository.Get(ctx)
}

func (r *flakySocialRepo) Put(ctx context.Context, links []social.Link) error {
	if r.fail != nil {
		return r.fail
	}
	return r.Repository.Put(ctx, links)
}

type recordingPublisher struct {
	msgs chan service.ContentChanged
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{msgs: make(chan service.ContentChanged, 16)}
}

func (p *recordingPublisher) PublishContentChanged(_ context.Context, msg service.ContentChanged) error {
	p.msgs <- msg
	return nil
}

type fixture struct {
	store     *EntityStore
	events    *flakyEventRepo
	profiles  *flakyProfileRepo
	socials   *flakySocialRepo
	publisher *recordingPublisher
}

func newFixture() *fixture {
	f := &fixture{
		events:    &flakyEventRepo{Repository: persistence.NewMemoryEventRepo()},
		profiles:  &flakyProfileRepo{Repository: persistence.NewMemoryProfileRepo()},
		socials:   &flakySocialRepo{Repository: persistence.NewMemorySocialRepo()},
		publisher: newRecordingPublisher(),
	}
	return f
}
