package content

import (
	"context"
	"errors"
	"io"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/media"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"go.uber.org/zap"
)

// GetProfile returns the built-in default until a profile was saved, and
// also when the backend cannot be read.
func (s *EntityStore) GetProfile(ctx context.Context) *profile.Data {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.readProfile(ctx, s.profiles)
	if err != nil {
		s.logger.Error("Failed to get profile", err)
		return profile.Default()
	}
	return d
}

// loadProfile reads the stored profile past any cache. It fails on backend
// errors; only a missing document yields the default.
func (s *EntityStore) loadProfile(ctx context.Context) (*profile.Data, error) {
	return s.readProfile(ctx, s.primaryProfiles)
}

func (s *EntityStore) readProfile(ctx context.Context, repo profile.Repository) (*profile.Data, error) {
	d, err := repo.Get(ctx)
	if err == nil {
		d.Normalize()
		return d, nil
	}
	if errors.Is(err, profile.ErrProfileNotFound) || errors.Is(err, apperror.ErrNotFound) {
		return profile.Default(), nil
	}
	return nil, unavailable("profile read failed", err)
}

// SaveProfile replaces the whole profile document.
func (s *EntityStore) SaveProfile(ctx context.Context, d *profile.Data) error {
	ctx, span := tracer.Start(ctx, "SaveProfile")
	defer span.End()

	if d == nil {
		return apperror.NewInvalidInput("profile is required", nil)
	}
	d = d.Clone()
	d.Normalize()
	if err := d.Validate(); err != nil {
		return apperror.NewValidation(err.Error(), err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.profiles.Put(ctx, d); err != nil {
		err = unavailable("failed to save profile", err)
		span.RecordError(err)
		return err
	}
	s.logger.Info("Profile saved")
	s.notify(service.ActionSaved, service.KindProfile, "")
	return nil
}

func (s *EntityStore) GetProfileItem(ctx context.Context, cat profile.Category, id string) (profile.Item, bool) {
	return s.GetProfile(ctx).FindItem(cat, id)
}

// SaveProfileItem replaces the item with the draft's id or appends a new
// one, then writes the whole profile back.
func (s *EntityStore) SaveProfileItem(ctx context.Context, cat profile.Category, draft profile.ItemDraft) (profile.Item, error) {
	ctx, span := tracer.Start(ctx, "SaveProfileItem")
	defer span.End()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.loadProfile(ctx)
	if err != nil {
		span.RecordError(err)
		return profile.Item{}, err
	}

	item, found := d.FindItem(cat, draft.ID)
	if draft.ID != "" && found {
		draft.Apply(&item)
	} else {
		item = draft.New()
		if item.ID == "" {
			item.ID = s.newID()
		}
	}
	if err := item.Validate(); err != nil {
		return profile.Item{}, apperror.NewValidation(err.Error(), err)
	}

	d.Upsert(cat, item)
	if err := s.profiles.Put(ctx, d); err != nil {
		err = unavailable("failed to save profile item", err)
		span.RecordError(err)
		return profile.Item{}, err
	}
	s.logger.Info("Profile item saved", zap.String("category", string(cat)), zap.String("item_id", item.ID))
	s.notify(service.ActionSaved, service.KindProfile, "")
	return item, nil
}

// DeleteProfileItem is a no-op for unknown ids.
func (s *EntityStore) DeleteProfileItem(ctx context.Context, cat profile.Category, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.loadProfile(ctx)
	if err != nil {
		return err
	}
	if !d.RemoveItem(cat, id) {
		return nil
	}
	if err := s.profiles.Put(ctx, d); err != nil {
		return unavailable("failed to delete profile item", err)
	}
	s.logger.Info("Profile item deleted", zap.String("category", string(cat)), zap.String("item_id", id))
	s.notify(service.ActionSaved, service.KindProfile, "")
	return nil
}

// SetProfilePhoto replaces the avatar with the uploaded image.
func (s *EntityStore) SetProfilePhoto(ctx context.Context, r io.Reader) (*profile.Data, error) {
	uri, err := s.EncodeImage(r)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.loadProfile(ctx)
	if err != nil {
		return nil, err
	}
	d.Photos = media.ReplaceAvatar(uri)
	if err := s.profiles.Put(ctx, d); err != nil {
		return nil, unavailable("failed to save profile photo", err)
	}
	s.notify(service.ActionSaved, service.KindProfile, "")
	return d, nil
}
