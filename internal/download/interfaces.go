package download

import (
	"context"

	"github.com/ytget/ytmedia/internal/model"
	"github.com/ytget/ytmedia/internal/transcode"
)

// Call describes one invocation of the downloader.
type Call struct {
	URL            string
	OutputTemplate string
	Selector       string
	Client         model.ClientIdentity
	Auth           model.AuthOptions
	Render         transcode.Options
	Progress       func(model.ProgressEvent)
}

// Invoker fetches and post-processes one stream. Invoke blocks until the
// attempt finishes and honours ctx cancellation.
type Invoker interface {
	Invoke(ctx context.Context, call Call) error
}

// ProbeCall describes one format listing request.
type ProbeCall struct {
	URL    string
	Client model.ClientIdentity
	Auth   model.AuthOptions
}

// Prober lists the formats available for a URL without downloading.
type Prober interface {
	Probe(ctx context.Context, call ProbeCall) ([]Format, error)
}
