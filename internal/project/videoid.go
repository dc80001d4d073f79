package project

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// IDLen is the length of a YouTube video id.
const IDLen = 11

var reID = regexp.MustCompile(fmt.Sprintf(`^[A-Za-z0-9_-]{%d}`, IDLen))

// VideoID normalizes a video reference, either a YouTube URL or a bare id, to
// the 11-character id. Longer bare ids are truncated.
func VideoID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if strings.Contains(ref, "://") || strings.Contains(ref, "/") {
		return fromURL(ref)
	}
	return bareID(ref)
}

// VideoIDs normalizes every reference and stops at the first invalid one.
func VideoIDs(refs []string) ([]string, error) {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		id, err := VideoID(r)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func bareID(s string) (string, error) {
	id := reID.FindString(s)
	if id == "" {
		return "", fmt.Errorf("invalid video id %q", s)
	}
	return id, nil
}

func fromURL(raw string) (string, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse video url: %w", err)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	path := strings.Trim(u.Path, "/")

	var cand string
	switch host {
	case "youtu.be":
		cand, _, _ = strings.Cut(path, "/")
	case "youtube.com", "music.youtube.com":
		if v := u.Query().Get("v"); v != "" {
			cand = v
			break
		}
		for _, prefix := range []string{"shorts/", "embed/", "live/", "v/"} {
			if rest, ok := strings.CutPrefix(path, prefix); ok {
				cand, _, _ = strings.Cut(rest, "/")
				break
			}
		}
	default:
		return "", fmt.Errorf("not a youtube url: %q", raw)
	}
	if cand == "" {
		return "", fmt.Errorf("no video id in %q", raw)
	}
	return bareID(cand)
}
