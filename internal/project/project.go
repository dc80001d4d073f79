// Package project keeps the list of videos a search runs over.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/forPelevin/ytsnip/internal/fsutil"
	"github.com/forPelevin/ytsnip/internal/types"
)

var (
	ErrUnknownVideo = errors.New("video not in project")
	ErrNotFound     = errors.New("project file not found")
)

// Store is a project persisted as JSON at Path.
type Store struct {
	Path string
}

func NewStore(path string) *Store { return &Store{Path: path} }

func (s *Store) Load() (types.Project, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.Project{}, fmt.Errorf("%w: %s", ErrNotFound, s.Path)
		}
		return types.Project{}, fmt.Errorf("read project: %w", err)
	}
	var p types.Project
	if err := json.Unmarshal(b, &p); err != nil {
		return types.Project{}, fmt.Errorf("parse project %s: %w", s.Path, err)
	}
	return p, nil
}

func (s *Store) Save(p types.Project) error {
	if p.Videos == nil {
		p.Videos = []string{}
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	return fsutil.WriteFileAtomic(s.Path, append(b, '\n'), 0o644)
}

// Add appends ids not already present, keeping first-seen order.
func Add(p types.Project, ids ...string) types.Project {
	out := slices.Clone(p.Videos)
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return types.Project{Videos: out}
}

// Remove drops ids from p. With no ids every video is removed. An id that is
// not in p fails the whole call and p is returned unchanged.
func Remove(p types.Project, ids ...string) (types.Project, error) {
	if len(ids) == 0 {
		return types.Project{Videos: []string{}}, nil
	}
	out := slices.Clone(p.Videos)
	for _, id := range ids {
		i := slices.Index(out, id)
		if i < 0 {
			return p, fmt.Errorf("%w: %s", ErrUnknownVideo, id)
		}
		out = slices.Delete(out, i, i+1)
	}
	return types.Project{Videos: out}, nil
}

// Select returns ids when given, otherwise every video in p.
func Select(p types.Project, ids []string) []string {
	if len(ids) > 0 {
		return ids
	}
	return slices.Clone(p.Videos)
}
