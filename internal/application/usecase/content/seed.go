package content

import (
	"context"
	"errors"

	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/social"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

// Seed writes the built-in profile and social links for documents that are
// not stored yet. It returns the names of the documents it wrote.
func (s *EntityStore) Seed(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Seed")
	defer span.End()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var seeded []string

	_, err := s.profiles.Get(ctx)
	switch {
	case isMissing(err, profile.ErrProfileNotFound):
		if err := s.profiles.Put(ctx, profile.Default()); err != nil {
			return seeded, unavailable("failed to seed profile", err)
		}
		seeded = append(seeded, "profile")
	case err != nil:
		return seeded, unavailable("profile read failed", err)
	}

	_, err = s.socials.Get(ctx)
	switch {
	case isMissing(err, social.ErrSocialsNotFound):
		if err := s.socials.Put(ctx, social.Default()); err != nil {
			return seeded, unavailable("failed to seed social links", err)
		}
		seeded = append(seeded, "socials")
	case err != nil:
		return seeded, unavailable("social links read failed", err)
	}

	return seeded, nil
}

func isMissing(err, sentinel error) bool {
	return err != nil && (errors.Is(err, sentinel) || errors.Is(err, apperror.ErrNotFound))
}
