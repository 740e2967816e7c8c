// Package avatar turns the backend's textual ByteData envelope into image
// bytes the console can show, and builds the initials placeholder used
// when that is not possible.
package avatar

import (
	"encoding/base64"
	"net/http"
	"os"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// Serverpod serializes ByteData as decode('<base64>', 'base64').
const (
	envelopePrefix = "decode('"
	envelopeSuffix = "', 'base64')"
)

const defaultContentType = "image/png"

// Resource is a decoded avatar. When it was cached to disk, Path names the
// file; the caller releases it once the avatar is superseded.
type Resource struct {
	Data        []byte
	ContentType string
	Path        string
}

// Release removes the cached file, if any. It is safe to call more than once.
func (r *Resource) Release() error {
	if r == nil || r.Path == "" {
		return nil
	}
	err := os.Remove(r.Path)
	r.Path = ""
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Decode extracts the payload bytes from an envelope. It reports false when
// v is not a string, does not have the envelope shape, or the payload is not
// valid base64 once whitespace is removed.
func Decode(v any) ([]byte, bool) {
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	if len(s) < len(envelopePrefix)+len(envelopeSuffix) ||
		!strings.HasPrefix(s, envelopePrefix) || !strings.HasSuffix(s, envelopeSuffix) {
		return nil, false
	}
	payload := s[len(envelopePrefix) : len(s)-len(envelopeSuffix)]
	payload = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, payload)
	if payload == "" {
		return nil, false
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, false
		}
	}
	return data, true
}

// Encode wraps data in the envelope. It is the inverse of Decode.
func Encode(data []byte) string {
	return envelopePrefix + base64.StdEncoding.EncodeToString(data) + envelopeSuffix
}

// Resolver decodes envelopes and caches the images under a directory.
type Resolver struct {
	dir    string
	logger *zap.Logger
}

// NewResolver creates a resolver caching into dir. With an empty dir the
// resources are kept in memory only.
func NewResolver(dir string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{dir: dir, logger: logger}
}

// Resolve returns the avatar carried by v, or nil. It never fails loudly:
// an avatar is decoration and must not get in the way of the page.
func (r *Resolver) Resolve(v any) *Resource {
	data, ok := Decode(v)
	if !ok {
		r.logger.Debug("avatar envelope not usable")
		return nil
	}

	res := &Resource{Data: data, ContentType: contentType(data)}
	if r.dir == "" {
		return res
	}
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		r.logger.Debug("avatar cache unavailable", zap.Error(err))
		return res
	}
	f, err := os.CreateTemp(r.dir, "avatar-*"+extension(res.ContentType))
	if err != nil {
		r.logger.Debug("avatar cache unavailable", zap.Error(err))
		return res
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil || cerr != nil {
		os.Remove(f.Name())
		r.logger.Debug("writing avatar cache failed", zap.NamedError("write", werr), zap.NamedError("close", cerr))
		return res
	}
	res.Path = f.Name()
	return res
}

func contentType(data []byte) string {
	ct := http.DetectContentType(data)
	if strings.HasPrefix(ct, "image/") {
		return ct
	}
	return defaultContentType
}

func extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	default:
		return ".png"
	}
}

// Initials builds the placeholder text for name: the first letters of the
// first two words, or the first two characters of a single word, upper-cased.
// An empty name gives "A" (for Admin).
func Initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "A"
	}
	if len(parts) >= 2 {
		a := []rune(parts[0])
		b := []rune(parts[1])
		return strings.ToUpper(string(a[0]) + string(b[0]))
	}
	r := []rune(parts[0])
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}
