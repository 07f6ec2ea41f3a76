package source

import (
	"context"
	"errors"
	"os"

	cerrors "github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/graph"
)

// Sentinel errors. Errors returned by FetchTopics are coded errors that also
// wrap one of these where applicable.
var (
	// ErrNotFound is returned when the provider has no topics endpoint.
	ErrNotFound = errors.New("topics not found")

	// ErrNetwork is returned for transport failures and bad responses.
	ErrNetwork = errors.New("network error")

	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("topic provider unavailable")

	// ErrTooLarge is returned when a response body exceeds the read limit.
	ErrTooLarge = errors.New("response too large")
)

// Provider supplies the topic graph to the pipeline.
//
// FetchTopics returns the graph and whether it was served from a cache.
// refresh asks the provider to bypass any cache it keeps.
type Provider interface {
	Name() string
	FetchTopics(ctx context.Context, refresh bool) (graph.Graph, bool, error)
}

// FileProvider reads the topic graph from a local JSON file in the same
// format the content API serves.
type FileProvider struct {
	Path string
}

// NewFileProvider returns a provider reading path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

// Name returns the file path.
func (p *FileProvider) Name() string { return p.Path }

// FetchTopics reads and decodes the file. The file is read on every call.
func (p *FileProvider) FetchTopics(ctx context.Context, _ bool) (graph.Graph, bool, error) {
	if err := ctx.Err(); err != nil {
		return graph.Graph{}, false, err
	}
	if _, err := os.Stat(p.Path); err != nil {
		if os.IsNotExist(err) {
			return graph.Graph{}, false, cerrors.Wrap(cerrors.ErrCodeFileNotFound, err, "topics file %s", p.Path)
		}
		return graph.Graph{}, false, cerrors.Wrap(cerrors.ErrCodeInternal, err, "stat %s", p.Path)
	}
	g, err := graph.ReadGraphFile(p.Path)
	if err != nil {
		return graph.Graph{}, false, cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "read topics file %s", p.Path)
	}
	return g, false, nil
}

var (
	_ Provider = (*Client)(nil)
	_ Provider = (*FileProvider)(nil)
)
