package content

import (
	"context"
	"errors"
	"io"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/media"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ListEvents returns every event, newest date first.
func (s *EntityStore) ListEvents(ctx context.Context) []*event.Event {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	events, err := s.events.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list events", err)
		return []*event.Event{}
	}
	event.SortByDateDesc(events)
	return events
}

// GetEvent hides the reason an event is missing; use LookupEvent to tell
// not-found from unavailable.
func (s *EntityStore) GetEvent(ctx context.Context, id string) (*event.Event, bool) {
	e, err := s.LookupEvent(ctx, id)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			s.logger.Error("Failed to get event", err, zap.String("event_id", id))
		}
		return nil, false
	}
	return e, true
}

func (s *EntityStore) LookupEvent(ctx context.Context, id string) (*event.Event, error) {
	if id == "" {
		return nil, apperror.NewNotFound("event", id)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.findEvent(ctx, s.events, id)
}

func (s *EntityStore) findEvent(ctx context.Context, repo event.Repository, id string) (*event.Event, error) {
	e, err := repo.FindByID(ctx, id)
	if err == nil {
		return e, nil
	}
	if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, event.ErrEventNotFound) {
		return nil, apperror.NewNotFound("event", id)
	}
	return nil, unavailable("event lookup failed", err)
}

// SaveEvent inserts a draft without an id, or merges it into the stored
// event with the same id. An id that is not stored yet is inserted as is.
func (s *EntityStore) SaveEvent(ctx context.Context, draft event.Draft) (*event.Event, error) {
	ctx, span := tracer.Start(ctx, "SaveEvent")
	defer span.End()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now().UnixMilli()

	var e *event.Event
	if draft.ID == "" {
		id, err := s.freshEventID(ctx)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		e = draft.New()
		e.ID = id
		e.CreatedAt = now
	} else {
		existing, err := s.findEvent(ctx, s.primaryEvents, draft.ID)
		switch {
		case err == nil:
			e = existing
			draft.MergeInto(e)
		case errors.Is(err, apperror.ErrNotFound):
			e = draft.New()
			e.CreatedAt = now
		default:
			span.RecordError(err)
			return nil, err
		}
	}
	e.UpdatedAt = now
	e.Normalize()
	span.SetAttributes(attribute.String("event_id", e.ID))

	if err := e.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error(), err)
	}
	if err := s.events.Put(ctx, e); err != nil {
		err = unavailable("failed to save event", err)
		span.RecordError(err)
		return nil, err
	}

	s.logger.Info("Event saved", zap.String("event_id", e.ID))
	s.notify(service.ActionSaved, service.KindEvent, e.ID)
	return e, nil
}

func (s *EntityStore) freshEventID(ctx context.Context) (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		_, err := s.findEvent(ctx, s.primaryEvents, id)
		if errors.Is(err, apperror.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", apperror.NewConflict("event", "id", "generated")
}

// DeleteEvent succeeds for ids that do not exist.
func (s *EntityStore) DeleteEvent(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "DeleteEvent")
	defer span.End()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.events.Delete(ctx, id); err != nil {
		err = unavailable("failed to delete event", err)
		span.RecordError(err)
		return err
	}
	s.logger.Info("Event deleted", zap.String("event_id", id))
	s.notify(service.ActionDeleted, service.KindEvent, id)
	return nil
}

// AttachEventImage appends an uploaded image to an existing event.
func (s *EntityStore) AttachEventImage(ctx context.Context, id string, r io.Reader) (*event.Event, error) {
	uri, err := s.EncodeImage(r)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	e, err := s.findEvent(ctx, s.primaryEvents, id)
	if err != nil {
		return nil, err
	}
	e.Images = media.Append(e.Images, uri)
	e.UpdatedAt = s.now().UnixMilli()
	if err := s.events.Put(ctx, e); err != nil {
		return nil, unavailable("failed to save event image", err)
	}
	s.notify(service.ActionSaved, service.KindEvent, e.ID)
	return e, nil
}
