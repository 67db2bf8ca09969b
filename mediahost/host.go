package mediahost

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"
)

// Host is the external media-hosting service: it stores uploaded binaries and
// returns durable URLs. The object identifier for a later delete is derivable
// from the URL's trailing path segment.
type Host interface {
	// Upload stores the content and returns its durable URL.
	Upload(ctx context.Context, name, mimeType string, content io.Reader) (string, error)

	// Delete removes the remote object. Best-effort: callers log failures and
	// never retry.
	Delete(ctx context.Context, objectID string) error
}

// ObjectIDFromURL derives the remote object identifier from a stored media
// URL: the trailing path segment, with the query string stripped and any file
// extension trimmed. Returns "" when no identifier can be derived.
func ObjectIDFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	p := strings.TrimRight(u.Path, "/")
	if p == "" {
		return ""
	}

	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
