package pipeline

import (
	"github.com/forPelevin/ytsnip/internal/ports"
	"github.com/forPelevin/ytsnip/internal/project"
	"github.com/forPelevin/ytsnip/internal/types"
)

func store(path string) ports.ProjectStore { return project.NewStore(path) }

// NewProject writes an empty project, replacing any existing one.
func NewProject(path string) error {
	return store(path).Save(types.Project{})
}

// AddVideos adds refs to the project and returns the normalized ids.
func AddVideos(path string, refs []string) ([]string, error) {
	ids, err := project.VideoIDs(refs)
	if err != nil {
		return nil, err
	}
	s := store(path)
	p, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := s.Save(project.Add(p, ids...)); err != nil {
		return nil, err
	}
	return ids, nil
}

// RemoveVideos removes refs, or every video when refs is empty. Nothing is
// written when any ref is not in the project.
func RemoveVideos(path string, refs []string) error {
	ids, err := project.VideoIDs(refs)
	if err != nil {
		return err
	}
	s := store(path)
	p, err := s.Load()
	if err != nil {
		return err
	}
	next, err := project.Remove(p, ids...)
	if err != nil {
		return err
	}
	return s.Save(next)
}

func ListVideos(path string) ([]string, error) {
	p, err := store(path).Load()
	if err != nil {
		return nil, err
	}
	return p.Videos, nil
}

// addAndSelect adds cfg.Videos to the project and returns them, or every
// project video when none were given.
func addAndSelect(cfg Config) ([]string, error) {
	ids, err := AddVideos(cfg.ProjectPath, cfg.Videos)
	if err != nil {
		return nil, err
	}
	p, err := store(cfg.ProjectPath).Load()
	if err != nil {
		return nil, err
	}
	return project.Select(p, ids), nil
}

// selectVideos is addAndSelect without touching the project file.
func selectVideos(cfg Config) ([]string, error) {
	ids, err := project.VideoIDs(cfg.Videos)
	if err != nil {
		return nil, err
	}
	p, err := store(cfg.ProjectPath).Load()
	if err != nil {
		return nil, err
	}
	return project.Select(p, ids), nil
}
