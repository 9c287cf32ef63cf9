package security

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	data := pngBytes(t)

	assert.NoError(t, ValidateImage("me.png", data))
	assert.ErrorIs(t, ValidateImage("me.gif", data), ErrImageType)
	assert.ErrorIs(t, ValidateImage("me.jpg", data), ErrImageSignature)
	assert.ErrorIs(t, ValidateImage("me.png", nil), ErrImageEmpty)
	assert.ErrorIs(t, ValidateImage("me.png", make([]byte, MaxImageBytes+1)), ErrImageTooLarge)
}
