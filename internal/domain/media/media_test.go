package media

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func fakePNG(size int) []byte {
	b := make([]byte, size)
	copy(b, pngHeader)
	return b
}

func TestEncode_AcceptsSmallImage(t *testing.T) {
	raw := fakePNG(500 * 1024)
	uri, err := Encode(bytes.NewReader(raw), MaxImageBytes)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, raw, payload)
}

func TestEncode_ExactLimitIsAccepted(t *testing.T) {
	_, err := Encode(bytes.NewReader(fakePNG(int(MaxImageBytes))), MaxImageBytes)
	assert.NoError(t, err)
}

func TestEncode_RejectsLargeImage(t *testing.T) {
	_, err := Encode(bytes.NewReader(fakePNG(2<<20)), MaxImageBytes)
	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.Equal(t, "File is too large (>1MB)", err.Error())
}

func TestEncode_RejectsNonImage(t *testing.T) {
	_, err := Encode(strings.NewReader("just some text"), MaxImageBytes)
	assert.ErrorIs(t, err, ErrNotAnImage)

	_, err = Encode(strings.NewReader(""), MaxImageBytes)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestAppendAndReplace(t *testing.T) {
	orig := []string{"a"}
	out := Append(orig, "b")
	assert.Equal(t, []string{"a", "b"}, out)
	assert.Equal(t, []string{"a"}, orig)

	assert.Equal(t, []string{"c"}, ReplaceAvatar("c"))
}
