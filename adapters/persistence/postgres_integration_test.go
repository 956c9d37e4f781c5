package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/khoahotran/portfolio/adapters/persistence/migrations"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/i18n"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/social"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type PostgresRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	testLogger  logger.Logger
	eventRepo   event.Repository
	profileRepo profile.Repository
	socialRepo  social.Repository
}

func (s *PostgresRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	s.testLogger = logger.NewNopLogger()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	if _, err := migrations.Up(pool); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}
	// second run is a no-op
	if _, err := migrations.Up(pool); err != nil {
		s.T().Fatalf("Re-running migrations failed: %s", err)
	}

	s.eventRepo = NewPostgresEventRepo(s.dbPool, s.testLogger)
	s.profileRepo = NewPostgresProfileRepo(s.dbPool, s.testLogger)
	s.socialRepo = NewPostgresSocialRepo(s.dbPool, s.testLogger)
}

func (s *PostgresRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func (s *PostgresRepoIntegrationTestSuite) SetupTest() {
	_, err := s.dbPool.Exec(context.Background(), `TRUNCATE events, documents`)
	s.Require().NoError(err)
}

func TestPostgresRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(PostgresRepoIntegrationTestSuite))
}

func (s *PostgresRepoIntegrationTestSuite) Test_Event_Put_FindByID_List() {
	ctx := context.Background()
	place := event.Place(2)

	older := &event.Event{
		ID:          "older",
		Title:       i18n.Text{i18n.EN: "Older", i18n.RU: "Старое"},
		Description: i18n.Text{},
		Date:        "2022-03-04",
		Images:      []string{"data:image/png;base64,AAAA"},
		Type:        event.TypeCompetition,
		Place:       &place,
		CreatedAt:   1000,
		UpdatedAt:   1000,
	}
	newer := &event.Event{
		ID:          "newer",
		Title:       i18n.Text{i18n.EN: "Newer"},
		Description: i18n.Text{},
		Date:        "2024-01-01",
		Images:      []string{},
		Type:        event.TypeJourney,
		CreatedAt:   2000,
	}
	s.Require().NoError(s.eventRepo.Put(ctx, older))
	s.Require().NoError(s.eventRepo.Put(ctx, newer))

	got, err := s.eventRepo.FindByID(ctx, "older")
	s.Require().NoError(err)
	s.Equal(older, got)

	list, err := s.eventRepo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("newer", list[0].ID)
	s.Nil(list[0].Place)
}

func (s *PostgresRepoIntegrationTestSuite) Test_Event_Upsert_And_Delete() {
	ctx := context.Background()
	e := &event.Event{ID: "e", Title: i18n.Text{i18n.EN: "v1"}, Description: i18n.Text{}, Date: "2024-01-01", Images: []string{}, Type: event.TypeStandard, CreatedAt: 5}
	s.Require().NoError(s.eventRepo.Put(ctx, e))

	e.Title = i18n.Text{i18n.EN: "v2"}
	s.Require().NoError(s.eventRepo.Put(ctx, e))

	got, err := s.eventRepo.FindByID(ctx, "e")
	s.Require().NoError(err)
	s.Equal("v2", got.Title[i18n.EN])
	s.Equal(int64(5), got.CreatedAt)

	s.Require().NoError(s.eventRepo.Delete(ctx, "e"))
	s.Require().NoError(s.eventRepo.Delete(ctx, "e"))
	_, err = s.eventRepo.FindByID(ctx, "e")
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *PostgresRepoIntegrationTestSuite) Test_Profile_And_Socials_Documents() {
	ctx := context.Background()

	_, err := s.profileRepo.Get(ctx)
	s.ErrorIs(err, profile.ErrProfileNotFound)

	d := profile.Default()
	d.Upsert(profile.CategorySkills, profile.Item{ID: "go", Title: i18n.Text{i18n.EN: "Go"}, Subtitle: i18n.Text{}, Description: i18n.Text{}, Images: []string{}})
	s.Require().NoError(s.profileRepo.Put(ctx, d))

	got, err := s.profileRepo.Get(ctx)
	s.Require().NoError(err)
	s.Equal(d, got)

	_, err = s.socialRepo.Get(ctx)
	s.ErrorIs(err, social.ErrSocialsNotFound)

	s.Require().NoError(s.socialRepo.Put(ctx, social.Default()))
	links, err := s.socialRepo.Get(ctx)
	s.Require().NoError(err)
	s.Equal(social.Default(), links)
}
