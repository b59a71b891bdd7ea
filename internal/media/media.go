// ABOUTME: Image admission for uploaded files: size cap and inline data-URL encoding
// ABOUTME: Accepted images are embedded in the owning record so one write round-trips everything

package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// MaxImageBytes is the largest accepted upload (2 MiB).
const MaxImageBytes = 2 << 20

// ErrImageTooLarge is returned when an upload exceeds MaxImageBytes.
var ErrImageTooLarge = fmt.Errorf("image exceeds %d bytes", MaxImageBytes)

// ErrNoImage is returned when the upload is empty.
var ErrNoImage = errors.New("no image provided")

// Admit reads an upload and returns it as a base64 data URL. Only the size is
// checked; the format is not. size is the caller-reported length, -1 when
// unknown. The reader is capped independently so a wrong size cannot smuggle
// in a larger payload.
func Admit(r io.Reader, size int64, contentType string) (string, error) {
	if size > MaxImageBytes {
		return "", ErrImageTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}
	if len(data) == 0 {
		return "", ErrNoImage
	}

	return EncodeDataURL(data, contentType), nil
}

// AdmitFile admits a multipart upload.
func AdmitFile(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNoImage
	}
	if fh.Size > MaxImageBytes {
		return "", ErrImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	return Admit(f, fh.Size, fh.Header.Get("Content-Type"))
}

// EncodeDataURL builds a data URL. When contentType is empty or generic the
// type is sniffed from the bytes.
func EncodeDataURL(data []byte, contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = sniff(data)
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	var buf bytes.Buffer
	buf.Grow(len(contentType) + 13 + base64.StdEncoding.EncodedLen(len(data)))
	buf.WriteString("data:")
	buf.WriteString(contentType)
	buf.WriteString(";base64,")
	buf.WriteString(base64.StdEncoding.EncodeToString(data))
	return buf.String()
}

// sniff detects the content type, recognizing SVG documents that
// http.DetectContentType reports as generic XML or text.
func sniff(data []byte) string {
	ct := http.DetectContentType(data)
	if strings.HasPrefix(ct, "text/xml") || strings.HasPrefix(ct, "text/plain") {
		head := data[:min(len(data), 1024)]
		if bytes.Contains(head, []byte("<svg")) {
			return "image/svg+xml"
		}
	}
	return ct
}

// Renderable reports whether src may be placed in an img src attribute:
// an inline image payload, an absolute http(s) URL, or a site-relative path.
func Renderable(src string) bool {
	return strings.HasPrefix(src, "data:image/") ||
		strings.HasPrefix(src, "https://") ||
		strings.HasPrefix(src, "http://") ||
		strings.HasPrefix(src, "/")
}

// TemplateURL marks a renderable source as safe for html/template, which
// would otherwise rewrite data: payloads to "#ZgotmplZ". Anything else
// becomes empty.
func TemplateURL(src string) template.URL {
	if Renderable(src) {
		return template.URL(src)
	}
	return ""
}

// IsInline reports whether src is an embedded data payload rather than an external URL.
func IsInline(src string) bool {
	return strings.HasPrefix(src, "data:")
}
