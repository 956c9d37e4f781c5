package content

import (
	"context"
	"errors"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/social"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

func (s *EntityStore) GetSocialLinks(ctx context.Context) []social.Link {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	links, err := s.socials.Get(ctx)
	if err != nil {
		if !errors.Is(err, social.ErrSocialsNotFound) && !errors.Is(err, apperror.ErrNotFound) {
			s.logger.Error("Failed to get social links", err)
		}
		return social.Default()
	}
	if links == nil {
		links = []social.Link{}
	}
	return links
}

// SaveSocialLinks replaces the whole list.
func (s *EntityStore) SaveSocialLinks(ctx context.Context, links []social.Link) error {
	ctx, span := tracer.Start(ctx, "SaveSocialLinks")
	defer span.End()

	if err := social.Validate(links); err != nil {
		return apperror.NewValidation(err.Error(), err)
	}
	links = social.Clone(links)
	if links == nil {
		links = []social.Link{}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.socials.Put(ctx, links); err != nil {
		err = unavailable("failed to save social links", err)
		span.RecordError(err)
		return err
	}
	s.logger.Info("Social links saved")
	s.notify(service.ActionSaved, service.KindSocials, "")
	return nil
}
