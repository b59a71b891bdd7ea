// ABOUTME: Tests for image admission limits and data-URL encoding
// ABOUTME: Pins the exact 2 MiB boundary

package media

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmit_Boundary(t *testing.T) {
	exact := bytes.Repeat([]byte{0xFF}, MaxImageBytes)
	url, err := Admit(bytes.NewReader(exact), int64(len(exact)), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))

	over := bytes.Repeat([]byte{0xFF}, MaxImageBytes+1)
	_, err = Admit(bytes.NewReader(over), int64(len(over)), "image/jpeg")
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestAdmit_UnderreportedSizeStillCapped(t *testing.T) {
	over := bytes.Repeat([]byte{0x01}, MaxImageBytes+1)
	_, err := Admit(bytes.NewReader(over), 10, "image/png")
	assert.ErrorIs(t, err, ErrImageTooLarge)

	_, err = Admit(bytes.NewReader(over), -1, "image/png")
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestAdmit_Empty(t *testing.T) {
	_, err := Admit(bytes.NewReader(nil), 0, "image/png")
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestEncodeDataURL_SniffsType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	url := EncodeDataURL(png, "")
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"), url)

	url = EncodeDataURL([]byte("GIF89a...."), "application/octet-stream")
	assert.True(t, strings.HasPrefix(url, "data:image/gif;base64,"), url)

	url = EncodeDataURL([]byte("x"), "image/webp; charset=binary")
	assert.True(t, strings.HasPrefix(url, "data:image/webp;base64,"), url)
}

func TestIsInline(t *testing.T) {
	assert.True(t, IsInline("data:image/png;base64,AAAA"))
	assert.False(t, IsInline("https://example.com/a.png"))
	assert.False(t, IsInline(""))
}

func TestAdmitFile(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("\xFF\xD8\xFFjpegdata"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(MaxImageBytes*2))

	fh := req.MultipartForm.File["image"][0]
	url, err := AdmitFile(fh)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:"), url)

	_, err = AdmitFile(nil)
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestAdmit_AcceptsAnyFormat(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		contentType string
		wantPrefix  string
	}{
		{"svg without header", `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`, "", "data:image/svg+xml;base64,"},
		{"plain text", "hello", "text/plain", "data:text/plain;base64,"},
		{"heic as octet-stream", "\x00\x00\x00\x18ftypheic\x00\x00\x00\x00", "application/octet-stream", "data:application/octet-stream;base64,"},
		{"declared heic", "\x00\x00\x00\x18ftypheic", "image/heic", "data:image/heic;base64,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := Admit(strings.NewReader(tt.data), int64(len(tt.data)), tt.contentType)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(url, tt.wantPrefix), url)
		})
	}
}

func TestTemplateURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AA==", string(TemplateURL("data:image/png;base64,AA==")))
	assert.Equal(t, "https://example.com/a.jpg", string(TemplateURL("https://example.com/a.jpg")))
	assert.Equal(t, "/static/a.jpg", string(TemplateURL("/static/a.jpg")))
	assert.Empty(t, string(TemplateURL("data:text/plain;base64,aGVsbG8=")))
	assert.Empty(t, string(TemplateURL("javascript:alert(1)")))
}
