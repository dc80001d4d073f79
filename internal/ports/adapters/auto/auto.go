// Package auto confirms every match unchanged, for unattended runs.
package auto

import (
	"context"

	"github.com/forPelevin/ytsnip/internal/domain/refine"
	"github.com/forPelevin/ytsnip/internal/types"
)

type Adapter struct {
	logf func(format string, args ...any)
}

func New(logf func(format string, args ...any)) *Adapter {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Adapter{logf: logf}
}

func (a *Adapter) Refine(ctx context.Context, p types.Progress, sel *refine.Selection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sel.Apply(refine.Confirm)
	a.logf("video %d/%d %s: interval %d/%d %q", p.Video, p.VideoCount, p.VideoID, p.Match, p.MatchCount, sel.View().Selected)
	return nil
}
