package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/forPelevin/ytsnip/internal/domain/captions"
	"github.com/forPelevin/ytsnip/internal/domain/refine"
	"github.com/forPelevin/ytsnip/internal/domain/search"
	"github.com/forPelevin/ytsnip/internal/domain/timeline"
	"github.com/forPelevin/ytsnip/internal/ports"
	"github.com/forPelevin/ytsnip/internal/types"
)

type Deps struct {
	Captions  ports.CaptionSource
	Absent    ports.AbsenceCache
	Refiner   ports.Refiner
	Extractor ports.ClipExtractor
	Limiter   ports.Limiter
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Tuning struct {
	Captions     captions.Options
	Timeline     timeline.Options
	ContextWords int
}

type Input struct {
	Videos  []string
	Pattern *regexp.Regexp
	Tuning  Tuning
	Logf    func(format string, args ...any)
}

type Result struct {
	Matches []types.VideoMatches
	Clips   []string
	Skipped int
	// NoCaptions lists videos without a caption track, cached or newly found.
	NoCaptions []string
}

// Search finds every match in every video without refining or extracting.
func (u Usecase) Search(ctx context.Context, in Input) (Result, error) {
	logf := orNop(in.Logf)
	var res Result
	var failed []error
	for _, id := range in.Videos {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		tl, ok, err := u.timeline(ctx, id, in.Tuning, logf, &res)
		if err != nil {
			failed = append(failed, fmt.Errorf("video %s: %w", id, err))
			continue
		}
		if !ok {
			continue
		}
		matches := search.Find(in.Pattern, tl)
		logf("%s: %d matches", id, len(matches))
		res.Matches = append(res.Matches, types.VideoMatches{VideoID: id, Intervals: matches})
	}
	return res, errors.Join(failed...)
}

// Run refines every match with the Refiner and extracts the confirmed ones.
// A failing video is reported and the next one is processed; an operator abort
// or a cancelled context stops the run.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	logf := orNop(in.Logf)
	var res Result
	var failed []error
	for i, id := range in.Videos {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		tl, ok, err := u.timeline(ctx, id, in.Tuning, logf, &res)
		if err != nil {
			failed = append(failed, fmt.Errorf("video %s: %w", id, err))
			continue
		}
		if !ok {
			continue
		}

		matches := search.Find(in.Pattern, tl)
		res.Matches = append(res.Matches, types.VideoMatches{VideoID: id, Intervals: matches})
		logf("%s: %d matches", id, len(matches))
		if len(matches) == 0 {
			continue
		}

		for j, m := range matches {
			p := types.Progress{VideoID: id, Video: i + 1, VideoCount: len(in.Videos), Match: j + 1, MatchCount: len(matches)}
			out, err := u.refineAndExtract(ctx, p, tl, m, in)
			if err != nil {
				if errors.Is(err, ports.ErrAborted) || ctx.Err() != nil {
					return res, err
				}
				failed = append(failed, fmt.Errorf("video %s: %w", id, err))
				break
			}
			if out == "" {
				res.Skipped++
				continue
			}
			logf("clip: %s", out)
			res.Clips = append(res.Clips, out)
		}
	}
	return res, errors.Join(failed...)
}

// FetchCaptions makes sure every video's caption track is available, recording
// the ones that have none.
func (u Usecase) FetchCaptions(ctx context.Context, videos []string, logf func(string, ...any)) (Result, error) {
	logf = orNop(logf)
	var res Result
	var failed []error
	for _, id := range videos {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if _, ok, err := u.fetch(ctx, id, logf, &res); err != nil {
			failed = append(failed, fmt.Errorf("video %s: %w", id, err))
		} else if ok {
			logf("captions ready: %s", id)
		}
	}
	return res, errors.Join(failed...)
}

func (u Usecase) refineAndExtract(ctx context.Context, p types.Progress, tl timeline.Timeline, m types.Interval, in Input) (string, error) {
	sel := refine.New(tl, m, in.Tuning.ContextWords)
	if err := u.d.Refiner.Refine(ctx, p, sel); err != nil {
		return "", err
	}
	req, ok := sel.Clip(p.VideoID, in.Pattern.String())
	if !ok {
		return "", nil
	}
	if err := u.d.Limiter.Wait(ctx); err != nil {
		return "", err
	}
	out, err := u.d.Extractor.Extract(ctx, req)
	if err != nil {
		return "", fmt.Errorf("extract %.3f-%.3f: %w", req.Start, req.End, err)
	}
	return out, nil
}

// fetch returns the raw captions of id. ok is false when the video has none.
func (u Usecase) fetch(ctx context.Context, id string, logf func(string, ...any), res *Result) (string, bool, error) {
	if u.d.Absent.Has(id) {
		logf("no captions (cached): %s", id)
		res.NoCaptions = append(res.NoCaptions, id)
		return "", false, nil
	}
	raw, err := u.d.Captions.Fetch(ctx, id)
	if errors.Is(err, ports.ErrNoCaptions) {
		logf("no captions: %s", id)
		res.NoCaptions = append(res.NoCaptions, id)
		if err := u.d.Absent.Add(id); err != nil {
			return "", false, fmt.Errorf("record missing captions: %w", err)
		}
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return raw, true, nil
}

func (u Usecase) timeline(ctx context.Context, id string, t Tuning, logf func(string, ...any), res *Result) (timeline.Timeline, bool, error) {
	raw, ok, err := u.fetch(ctx, id, logf, res)
	if err != nil || !ok {
		return timeline.Timeline{}, false, err
	}
	doc, err := captions.Parse(raw, t.Captions)
	if err != nil {
		return timeline.Timeline{}, false, fmt.Errorf("parse captions: %w", err)
	}
	if doc.Empty() {
		logf("no words found: %s", id)
		return timeline.Timeline{}, false, nil
	}
	tl, err := timeline.Build(doc, t.Timeline)
	if err != nil {
		return timeline.Timeline{}, false, fmt.Errorf("build timeline: %w", err)
	}
	if n := len(search.Words(tl)); n != tl.Len() {
		return timeline.Timeline{}, false, fmt.Errorf("build timeline: word index has %d entries for %d words", n, tl.Len())
	}
	return tl, true, nil
}

func orNop(logf func(string, ...any)) func(string, ...any) {
	if logf == nil {
		return func(string, ...any) {}
	}
	return logf
}
