package ports

import (
	"context"
	"errors"

	"github.com/forPelevin/ytsnip/internal/domain/refine"
	"github.com/forPelevin/ytsnip/internal/types"
)

var (
	// ErrNoCaptions means the video has no caption track in the requested language.
	ErrNoCaptions = errors.New("no captions available")
	// ErrAborted means the operator quit the interactive session.
	ErrAborted = errors.New("aborted by user")
)

// CaptionSource returns the raw caption track of a video.
type CaptionSource interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// AbsenceCache remembers videos known to have no captions.
type AbsenceCache interface {
	Has(videoID string) bool
	Add(videoID string) error
}

// ClipExtractor writes the clip for req and returns the output path.
type ClipExtractor interface {
	Extract(ctx context.Context, req types.ClipRequest) (string, error)
}

// Refiner drives sel to a terminal state.
type Refiner interface {
	Refine(ctx context.Context, p types.Progress, sel *refine.Selection) error
}

// Limiter gates calls to an external tool.
type Limiter interface {
	Wait(ctx context.Context) error
}

type ProjectStore interface {
	Load() (types.Project, error)
	Save(types.Project) error
}
