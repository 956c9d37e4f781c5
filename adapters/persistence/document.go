package persistence

import (
	"github.com/khoahotran/portfolio/pkg/apperror"
)

// Keys of the singleton documents.
const (
	profileDocumentKey = "profile/main"
	socialsDocumentKey = "socials/main"
)

// notFoundDocument matches both apperror.ErrNotFound and the domain sentinel.
func notFoundDocument(key string, sentinel error) error {
	return apperror.NewAppError(apperror.ErrNotFound, "document not found", key, sentinel)
}
