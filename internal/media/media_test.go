package media

import (
	"strings"
	"testing"

	"greenpatch/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key, err := objectKey("image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "images/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	other, err := objectKey("IMAGE/PNG")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)

	_, err = objectKey("application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/greenpatch-media/images/a.png",
		objectURL(false, "localhost:9000", "greenpatch-media", "images/a.png"))
	assert.Equal(t, "https://s3.example.com/b/k.jpg", objectURL(true, "s3.example.com", "b", "k.jpg"))
}

func TestNewStore(t *testing.T) {
	_, err := NewStore(&config.MediaConfig{})
	assert.Error(t, err)

	s, err := NewStore(&config.MediaConfig{
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "greenpatch-media",
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", s.endpoint)
}
