package content

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/media"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/social"
	"github.com/khoahotran/portfolio/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("content_usecase")

const (
	DefaultTimeout = 5 * time.Second
	maxIDAttempts  = 5
	publishTimeout = 5 * time.Second
)

type Settings struct {
	Timeout       time.Duration
	MaxImageBytes int64
}

// EntityStore is the persistence contract for events, the profile and the
// social links. Reads never fail: backend errors are logged and the caller
// gets an empty or default value. Writes return apperror values.
type EntityStore struct {
	events    event.Repository
	profiles  profile.Repository
	socials   social.Repository
	publisher service.ContentPublisher

	// Uncached views for reads that feed a write.
	primaryEvents   event.Repository
	primaryProfiles profile.Repository

	logger logger.Logger

	timeout       time.Duration
	maxImageBytes int64

	now   func() time.Time
	newID func() string
}

// NewEntityStore accepts a nil publisher when change notifications are off.
func NewEntityStore(
	events event.Repository,
	profiles profile.Repository,
	socials social.Repository,
	publisher service.ContentPublisher,
	settings Settings,
	log logger.Logger,
) *EntityStore {
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}
	if settings.MaxImageBytes <= 0 {
		settings.MaxImageBytes = media.MaxImageBytes
	}
	return &EntityStore{
		events:          events,
		profiles:        profiles,
		socials:         socials,
		publisher:       publisher,
		primaryEvents:   event.Primary(events),
		primaryProfiles: profile.Primary(profiles),
		logger:          log,
		timeout:         settings.Timeout,
		maxImageBytes:   settings.MaxImageBytes,
		now:             time.Now,
		newID:           func() string { return uuid.NewString() },
	}
}

func (s *EntityStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// notify runs detached from the request so a slow broker never delays the
// caller.
func (s *EntityStore) notify(action service.ContentAction, kind service.ContentKind, id string) {
	if s.publisher == nil {
		return
	}
	msg := service.ContentChanged{
		Action:     action,
		Kind:       kind,
		ID:         id,
		OccurredAt: s.now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.publisher.PublishContentChanged(ctx, msg); err != nil {
			s.logger.Error("Failed to publish content change", err,
				zap.String("kind", string(kind)),
				zap.String("id", id),
			)
		}
	}()
}
