package route

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/evergreen-ci/gimlet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePhotoRequest(t *testing.T, filename, contentType string, body []byte) *http.Request {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := httptest.NewRequest(http.MethodPut, "/bootcamps/b123/photo", buf)
	r.Header.Set("Content-Type", w.FormDataContentType())
	return gimlet.SetURLVars(r, map[string]string{"bootcamp_id": "b123"})
}

func TestPhotoUploadValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("AcceptsImageWithinLimit", func(t *testing.T) {
		h := &bootcampPhotoHandler{uploadPath: t.TempDir(), maxBytes: 1024}
		r := makePhotoRequest(t, "shot.png", "image/png", []byte("png-bytes"))
		require.NoError(t, h.Parse(ctx, r))
		assert.Equal(t, "b123", h.bootcampID)
		assert.Equal(t, ".png", h.extension)
		assert.Equal(t, []byte("png-bytes"), h.photo)
	})

	t.Run("RejectsNonImage", func(t *testing.T) {
		h := &bootcampPhotoHandler{uploadPath: t.TempDir(), maxBytes: 1024}
		r := makePhotoRequest(t, "notes.txt", "text/plain", []byte("not a photo"))
		err := h.Parse(ctx, r)
		require.Error(t, err)
		assert.Empty(t, h.photo)
	})

	t.Run("RejectsOversizedPhoto", func(t *testing.T) {
		h := &bootcampPhotoHandler{uploadPath: t.TempDir(), maxBytes: 8}
		r := makePhotoRequest(t, "big.jpg", "image/jpeg", bytes.Repeat([]byte("x"), 64))
		err := h.Parse(ctx, r)
		require.Error(t, err)
		assert.Empty(t, h.photo)
	})

	t.Run("RejectsMissingFile", func(t *testing.T) {
		h := &bootcampPhotoHandler{uploadPath: t.TempDir(), maxBytes: 1024}
		r := httptest.NewRequest(http.MethodPut, "/bootcamps/b123/photo", nil)
		r = gimlet.SetURLVars(r, map[string]string{"bootcamp_id": "b123"})
		assert.Error(t, h.Parse(ctx, r))
	})
}
