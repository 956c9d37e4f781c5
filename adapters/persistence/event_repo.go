package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/i18n"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var eventColumns = []string{"id", "title", "description", "date", "images", "type", "place", "created_at", "updated_at"}

type postgresEventRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresEventRepo(db *pgxpool.Pool, logger logger.Logger) event.Repository {
	return &postgresEventRepo{db: db, logger: logger}
}

func (r *postgresEventRepo) scanEvent(row pgx.Row) (*event.Event, error) {
	var (
		e                                  event.Event
		titleBytes, descBytes, imagesBytes []byte
		place                              *int16
	)
	err := row.Scan(
		&e.ID,
		&titleBytes,
		&descBytes,
		&e.Date,
		&imagesBytes,
		&e.Type,
		&place,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(titleBytes, &e.Title); err != nil {
		r.logger.Warn("Failed to unmarshal event title", zap.String("event_id", e.ID), zap.Error(err))
		e.Title = i18n.Text{}
	}
	if err := json.Unmarshal(descBytes, &e.Description); err != nil {
		r.logger.Warn("Failed to unmarshal event description", zap.String("event_id", e.ID), zap.Error(err))
		e.Description = i18n.Text{}
	}
	if err := json.Unmarshal(imagesBytes, &e.Images); err != nil || e.Images == nil {
		e.Images = []string{}
	}
	if place != nil {
		p := event.Place(*place)
		e.Place = &p
	}
	return &e, nil
}

func (r *postgresEventRepo) List(ctx context.Context) ([]*event.Event, error) {
	query, args, err := psql.Select(eventColumns...).
		From("events").
		OrderBy("date DESC", "created_at DESC", "id ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list events query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list events", err)
	}
	defer rows.Close()

	events := []*event.Event{}
	for rows.Next() {
		e, err := r.scanEvent(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan event", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("failed to iterate events", err)
	}
	return events, nil
}

func (r *postgresEventRepo) FindByID(ctx context.Context, id string) (*event.Event, error) {
	query, args, err := psql.Select(eventColumns...).
		From("events").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find event query", err)
	}

	e, err := r.scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("event", id)
		}
		return nil, apperror.NewInternal("failed to query event", err)
	}
	return e, nil
}

func (r *postgresEventRepo) Put(ctx context.Context, e *event.Event) error {
	titleBytes, err := json.Marshal(e.Title)
	if err != nil {
		return apperror.NewInternal("failed to marshal title", err)
	}
	descBytes, err := json.Marshal(e.Description)
	if err != nil {
		return apperror.NewInternal("failed to marshal description", err)
	}
	images := e.Images
	if images == nil {
		images = []string{}
	}
	imagesBytes, err := json.Marshal(images)
	if err != nil {
		return apperror.NewInternal("failed to marshal images", err)
	}
	var place *int16
	if e.Place != nil {
		p := int16(*e.Place)
		place = &p
	}

	query := `
		INSERT INTO events (id, title, description, date, images, type, place, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			date = EXCLUDED.date,
			images = EXCLUDED.images,
			type = EXCLUDED.type,
			place = EXCLUDED.place,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.Exec(ctx, query,
		e.ID,
		titleBytes,
		descBytes,
		e.Date,
		imagesBytes,
		string(e.Type),
		place,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert event", err)
	}
	return nil
}

func (r *postgresEventRepo) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("events").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build delete event query", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to delete event", err)
	}
	return nil
}
