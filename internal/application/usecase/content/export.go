package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/social"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"go.uber.org/zap"
)

// Export is the whole content set. Unlike the read operations, exporting
// fails when the backend does, so a backup never captures defaults in
// place of real data.
type Export struct {
	Events  []*event.Event `json:"events"`
	Profile *profile.Data  `json:"profile"`
	Socials []social.Link  `json:"socials"`
}

func (s *EntityStore) Export(ctx context.Context) (*Export, error) {
	ctx, span := tracer.Start(ctx, "Export")
	defer span.End()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	events, err := s.primaryEvents.List(ctx)
	if err != nil {
		return nil, unavailable("failed to export events", err)
	}
	event.SortByDateDesc(events)

	d, err := s.loadProfile(ctx)
	if err != nil {
		return nil, err
	}

	links, err := s.socials.Get(ctx)
	if err != nil {
		if !errors.Is(err, social.ErrSocialsNotFound) && !errors.Is(err, apperror.ErrNotFound) {
			return nil, unavailable("failed to export social links", err)
		}
		links = social.Default()
	}

	return &Export{Events: events, Profile: d, Socials: links}, nil
}

// Import writes every item of x, keeping event ids and timestamps. Events
// already stored under other ids are left alone.
func (s *EntityStore) Import(ctx context.Context, x *Export) error {
	ctx, span := tracer.Start(ctx, "Import")
	defer span.End()

	if x == nil {
		return apperror.NewInvalidInput("snapshot is empty", nil)
	}
	for i, e := range x.Events {
		if e == nil {
			return apperror.NewValidation(fmt.Sprintf("event #%d is empty", i+1), nil)
		}
		e.Normalize()
		if err := e.Validate(); err != nil {
			return apperror.NewValidation(fmt.Sprintf("event %q: %s", e.ID, err), err)
		}
	}

	if x.Profile != nil {
		if err := s.SaveProfile(ctx, x.Profile); err != nil {
			return err
		}
	}
	if x.Socials != nil {
		if err := s.SaveSocialLinks(ctx, x.Socials); err != nil {
			return err
		}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	for _, e := range x.Events {
		if err := s.events.Put(ctx, e); err != nil {
			err = unavailable("failed to import event", err)
			span.RecordError(err)
			return err
		}
		s.notify(service.ActionSaved, service.KindEvent, e.ID)
	}
	s.logger.Info("Content imported", zap.Int("events", len(x.Events)))
	return nil
}
