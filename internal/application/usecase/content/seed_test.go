package content

import (
	"context"

	"github.com/khoahotran/portfolio/internal/domain/i18n"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/social"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

func (s *EntityStoreTestSuite) Test_Seed_WritesMissingDocuments() {
	ctx := context.Background()

	seeded, err := s.store.Seed(ctx)
	s.Require().NoError(err)
	s.Equal([]string{"profile", "socials"}, seeded)

	d, err := s.f.profiles.Get(ctx)
	s.Require().NoError(err)
	s.Equal(profile.Default(), d)
	links, err := s.f.socials.Get(ctx)
	s.Require().NoError(err)
	s.Equal(social.Default(), links)

	seeded, err = s.store.Seed(ctx)
	s.Require().NoError(err)
	s.Empty(seeded)
}

func (s *EntityStoreTestSuite) Test_Seed_KeepsStoredDocuments() {
	ctx := context.Background()
	custom := profile.Default()
	custom.About = i18n.Text{i18n.EN: "custom"}
	s.Require().NoError(s.f.profiles.Put(ctx, custom))

	seeded, err := s.store.Seed(ctx)
	s.Require().NoError(err)
	s.Equal([]string{"socials"}, seeded)

	d, err := s.f.profiles.Get(ctx)
	s.Require().NoError(err)
	s.Equal("custom", d.About[i18n.EN])
}

func (s *EntityStoreTestSuite) Test_Seed_BackendFailure() {
	s.f.socials.fail = errBackendDown

	seeded, err := s.store.Seed(context.Background())
	s.ErrorIs(err, apperror.ErrUnavailable)
	s.Equal([]string{"profile"}, seeded)
}
