package content

import (
	"errors"
	"io"

	"github.com/khoahotran/portfolio/internal/domain/media"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

// EncodeImage turns an upload into a data URI without touching storage.
// Rejections carry a message fit for the editor.
func (s *EntityStore) EncodeImage(r io.Reader) (string, error) {
	uri, err := media.Encode(r, s.maxImageBytes)
	if err == nil {
		return uri, nil
	}
	switch {
	case errors.Is(err, media.ErrImageTooLarge):
		return "", apperror.NewValidation(media.ErrImageTooLarge.Error(), err)
	case errors.Is(err, media.ErrNotAnImage), errors.Is(err, media.ErrEmptyFile):
		return "", apperror.NewValidation("File is not a supported image", err)
	}
	return "", apperror.NewInvalidInput("failed to read upload", err)
}

func unavailable(details string, err error) error {
	if errors.Is(err, apperror.ErrUnavailable) {
		return err
	}
	return apperror.NewUnavailable(details, err)
}
