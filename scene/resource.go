package scene

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Resource wraps a streamable local file or remote scene asset. Scene
// documents may reference meshes and textures by relative path or by
// http/https URL; relative references resolve against the resource
// the document was read from.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns true if the resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Open a resource data stream. Scheme-less paths open as local files;
// http and https URLs are fetched with the net/http client. When
// relTo is given and path carries no scheme, the path resolves
// relative to it. The caller must close the returned resource.
func NewResource(path string, relTo *Resource) (*Resource, error) {
	// Mesh containers built on windows carry backslash texture paths.
	parsed, err := url.Parse(strings.ReplaceAll(path, `\`, `/`))
	if err != nil {
		return nil, fmt.Errorf("scene: could not parse resource path %q: %w", path, err)
	}

	if parsed.Scheme == "" && relTo != nil && !filepath.IsAbs(parsed.Path) {
		rel := parsed.Path
		parsed, err = url.Parse(relTo.url.String())
		if err != nil {
			return nil, fmt.Errorf("scene: could not resolve %q against %q: %w", path, relTo.Path(), err)
		}
		parsed.Path = filepath.ToSlash(filepath.Dir(parsed.Path)) + "/" + rel
	}

	var reader io.ReadCloser
	switch parsed.Scheme {
	case "":
		if reader, err = os.Open(filepath.Clean(parsed.Path)); err != nil {
			return nil, fmt.Errorf("scene: could not open resource: %w", err)
		}
	case "http", "https":
		resp, err := http.Get(parsed.String())
		if err != nil {
			return nil, fmt.Errorf("scene: could not fetch %q: %w", parsed.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("scene: could not fetch %q: status %d", parsed.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("scene: unsupported resource scheme %q", parsed.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        parsed,
	}, nil
}

// Create a resource from a reader. The name only serves as the anchor
// for resolving relative references.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	parsed, _ := url.Parse(name)
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        parsed,
	}
}
