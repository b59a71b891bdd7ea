// ABOUTME: Form parsing helpers shared by the admin tabs
// ABOUTME: Uploaded images go through media admission; errors become user-facing messages

package webadmin

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/2389/cafesite/internal/collection"
	"github.com/2389/cafesite/internal/content"
	"github.com/2389/cafesite/internal/media"
)

// maxFormBytes bounds a whole admin request: several images plus text fields.
const maxFormBytes = 5*media.MaxImageBytes + 1<<20

// parseForm parses urlencoded or multipart bodies with a size cap
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(32 << 20)
	}
	return r.ParseForm()
}

// formImage admits the uploaded file in field. ok is false when nothing was uploaded.
func formImage(r *http.Request, field string) (url string, ok bool, err error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return "", false, nil
	}
	fh := r.MultipartForm.File[field][0]
	if fh.Size == 0 && fh.Filename == "" {
		return "", false, nil
	}
	url, err = media.AdmitFile(fh)
	if err != nil {
		return "", true, err
	}
	return url, true, nil
}

// imageField resolves an image input pair: an upload wins over a typed URL.
// ok is false when neither was supplied.
func imageField(r *http.Request, fileField, urlField string) (string, bool, error) {
	if url, ok, err := formImage(r, fileField); ok || err != nil {
		return url, ok, err
	}
	if typed := strings.TrimSpace(r.FormValue(urlField)); typed != "" {
		return typed, true, nil
	}
	return "", false, nil
}

func formInt(r *http.Request, field string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(r.FormValue(field)), ",", ""))
	if err != nil {
		return 0
	}
	return n
}

func formBool(r *http.Request, field string) bool {
	switch r.FormValue(field) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func formString(r *http.Request, field string) string {
	return strings.TrimSpace(r.FormValue(field))
}

// userMessage maps user-correctable errors to a message; ok is false for
// infrastructure failures.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, media.ErrImageTooLarge):
		return "이미지는 2MB 이하만 업로드할 수 있습니다.", true
	case errors.Is(err, media.ErrNoImage):
		return "빈 파일은 업로드할 수 없습니다.", true
	case errors.Is(err, collection.ErrValidation):
		return validationMessage(err), true
	case errors.Is(err, content.ErrPasswordTooShort):
		return "비밀번호는 최소 4자 이상이어야 합니다.", true
	case errors.Is(err, content.ErrUnknownCategory):
		return "알 수 없는 분류입니다.", true
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return "요청이 너무 큽니다.", true
	}
	return "", false
}

func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

func parseMenuCategory(raw string) (content.MenuCategory, error) {
	if raw == "" {
		return content.CategoryCoffee, nil
	}
	return content.ParseMenuCategory(raw)
}

func parseGalleryCategory(raw string) (content.GalleryCategory, error) {
	if raw == "" {
		return content.GalleryInterior, nil
	}
	return content.ParseGalleryCategory(raw)
}

func parsePostCategory(raw string) (content.PostCategory, error) {
	if raw == "" {
		return content.PostNotice, nil
	}
	return content.ParsePostCategory(raw)
}
