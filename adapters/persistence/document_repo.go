package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/social"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// documentStore reads and writes whole JSON documents in the documents
// table.
type documentStore struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func (s *documentStore) get(ctx context.Context, key string, sentinel error, dst any) error {
	var body []byte
	err := s.db.QueryRow(ctx, `SELECT body FROM documents WHERE key = $1`, key).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFoundDocument(key, sentinel)
		}
		return apperror.NewInternal("failed to query document "+key, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		s.logger.Warn("Malformed document", zap.String("key", key), zap.Error(err))
		return apperror.NewInternal("malformed document "+key, err)
	}
	return nil
}

func (s *documentStore) put(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return apperror.NewInternal("failed to marshal document "+key, err)
	}
	query := `
		INSERT INTO documents (key, body, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			body = EXCLUDED.body,
			updated_at = NOW()
	`
	if _, err := s.db.Exec(ctx, query, key, body); err != nil {
		return apperror.NewInternal("failed to upsert document "+key, err)
	}
	return nil
}

type postgresProfileRepo struct {
	docs documentStore
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{docs: documentStore{db: db, logger: logger}}
}

func (r *postgresProfileRepo) Get(ctx context.Context) (*profile.Data, error) {
	d := &profile.Data{}
	if err := r.docs.get(ctx, profileDocumentKey, profile.ErrProfileNotFound, d); err != nil {
		return nil, err
	}
	d.Normalize()
	return d, nil
}

func (r *postgresProfileRepo) Put(ctx context.Context, d *profile.Data) error {
	return r.docs.put(ctx, profileDocumentKey, d)
}

type postgresSocialRepo struct {
	docs documentStore
}

func NewPostgresSocialRepo(db *pgxpool.Pool, logger logger.Logger) social.Repository {
	return &postgresSocialRepo{docs: documentStore{db: db, logger: logger}}
}

func (r *postgresSocialRepo) Get(ctx context.Context) ([]social.Link, error) {
	var doc social.Document
	if err := r.docs.get(ctx, socialsDocumentKey, social.ErrSocialsNotFound, &doc); err != nil {
		return nil, err
	}
	if doc.Links == nil {
		doc.Links = []social.Link{}
	}
	return doc.Links, nil
}

func (r *postgresSocialRepo) Put(ctx context.Context, links []social.Link) error {
	if links == nil {
		links = []social.Link{}
	}
	return r.docs.put(ctx, socialsDocumentKey, social.Document{Links: links})
}
