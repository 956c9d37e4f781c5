package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageBytes is the default ceiling for an attached image.
const MaxImageBytes int64 = 1 << 20

var (
	ErrImageTooLarge = errors.New("File is too large (>1MB)")
	ErrNotAnImage    = errors.New("file is not an image")
	ErrEmptyFile     = errors.New("file is empty")
)

// Encode reads an image of at most limit bytes and returns it as a data URI.
// Nothing past limit+1 bytes is read.
func Encode(r io.Reader, limit int64) (string, error) {
	if limit <= 0 {
		limit = MaxImageBytes
	}
	buf, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if int64(len(buf)) > limit {
		return "", ErrImageTooLarge
	}
	if len(buf) == 0 {
		return "", ErrEmptyFile
	}

	mt := mimetype.Detect(buf)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotAnImage, mt.String())
	}
	mime := mt.String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf), nil
}

// Append returns a new slice with uri added at the end.
func Append(images []string, uri string) []string {
	out := make([]string, 0, len(images)+1)
	out = append(out, images...)
	return append(out, uri)
}

// ReplaceAvatar returns the photos list after a profile photo upload. Only
// the newest photo is kept.
func ReplaceAvatar(uri string) []string {
	return []string{uri}
}
