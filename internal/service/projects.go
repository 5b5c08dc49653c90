package service

import (
	"context"
	"fmt"

	"github.com/Anu1650/team-mange-sam/internal/models"
	"github.com/Anu1650/team-mange-sam/internal/store"
)

// CreateProject はプロジェクトを追加します
// ステータスは planning、進捗は 0、マイルストーンは空で作成されます
func (s *Service) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	if err := required("name", p.Name); err != nil {
		return models.Project{}, err
	}
	if err := validateAmount("budget", p.Budget); err != nil {
		return models.Project{}, err
	}

	p.ID = s.newID()
	p.Status = "planning"
	p.Progress = 0
	p.Milestones = []models.Milestone{}
	p.CreatedAt = s.timestamp()

	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		d.Projects = append(d.Projects, p)
		return changed(models.Projects, p.CreatedBy, "project_created", "Created project: "+p.Name), nil
	})
	if err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// UpdateProject はプロジェクトを部分更新します
func (s *Service) UpdateProject(ctx context.Context, id string, patch Patch) (models.Project, error) {
	var out models.Project
	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		idx := indexOf(d.Projects, func(p models.Project) string { return p.ID }, id)
		if idx < 0 {
			return store.Change{}, notFound("project")
		}
		p := d.Projects[idx]
		if err := mergePatch(&p, patch); err != nil {
			return store.Change{}, err
		}
		if err := required("name", p.Name); err != nil {
			return store.Change{}, err
		}
		if err := validateAmount("budget", p.Budget); err != nil {
			return store.Change{}, err
		}
		if p.Progress < 0 || p.Progress > 100 {
			return store.Change{}, fmt.Errorf("%w: progress must be between 0 and 100", ErrValidation)
		}
		if p.Milestones == nil {
			p.Milestones = []models.Milestone{}
		}
		d.Projects[idx] = p
		out = p
		return changed(models.Projects, patch.StringField("updatedBy"), "project_updated", "Updated project: "+p.Name), nil
	})
	return out, err
}

// AddMilestone はプロジェクトにマイルストーンを追加します。ステータスは pending です
func (s *Service) AddMilestone(ctx context.Context, projectID string, m models.Milestone, actor string) (models.Milestone, error) {
	if err := required("title", m.Title); err != nil {
		return models.Milestone{}, err
	}
	m.ID = s.newID()
	m.Status = "pending"

	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		idx := indexOf(d.Projects, func(p models.Project) string { return p.ID }, projectID)
		if idx < 0 {
			return store.Change{}, notFound("project")
		}
		d.Projects[idx].Milestones = append(d.Projects[idx].Milestones, m)
		return changed(models.Projects, actor, "milestone_added", "Added milestone: "+m.Title), nil
	})
	if err != nil {
		return models.Milestone{}, err
	}
	return m, nil
}
