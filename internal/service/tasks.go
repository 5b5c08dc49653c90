package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/Anu1650/team-mange-sam/internal/models"
	"github.com/Anu1650/team-mange-sam/internal/store"
)

// カンバンの列
var taskStatuses = []string{"todo", "inprogress", "review", "done"}

func validateTaskStatus(status string) error {
	if !slices.Contains(taskStatuses, status) {
		return fmt.Errorf("%w: unknown task status %q", ErrValidation, status)
	}
	return nil
}

// CreateTask はタスクを追加します。ステータス未指定なら todo です
func (s *Service) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	if err := required("title", t.Title); err != nil {
		return models.Task{}, err
	}
	if t.Status == "" {
		t.Status = "todo"
	}
	if err := validateTaskStatus(t.Status); err != nil {
		return models.Task{}, err
	}

	t.ID = s.newID()
	t.CreatedAt = s.timestamp()

	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		d.Tasks = append(d.Tasks, t)
		return changed(models.Tasks, t.CreatedBy, "task_created", "Created task: "+t.Title), nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// UpdateTask はタスクを部分更新します（列の移動もこの操作です）
func (s *Service) UpdateTask(ctx context.Context, id string, patch Patch) (models.Task, error) {
	var out models.Task
	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		idx := indexOf(d.Tasks, func(t models.Task) string { return t.ID }, id)
		if idx < 0 {
			return store.Change{}, notFound("task")
		}
		t := d.Tasks[idx]
		if err := mergePatch(&t, patch); err != nil {
			return store.Change{}, err
		}
		if err := required("title", t.Title); err != nil {
			return store.Change{}, err
		}
		if err := validateTaskStatus(t.Status); err != nil {
			return store.Change{}, err
		}
		d.Tasks[idx] = t
		out = t
		return changed(models.Tasks, patch.StringField("updatedBy"), "task_updated", "Updated task: "+t.Title), nil
	})
	return out, err
}

// DeleteTask はタスクを削除します
func (s *Service) DeleteTask(ctx context.Context, id, actor string) error {
	return s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		idx := indexOf(d.Tasks, func(t models.Task) string { return t.ID }, id)
		if idx < 0 {
			return store.Change{}, notFound("task")
		}
		title := d.Tasks[idx].Title
		d.Tasks = slices.Delete(d.Tasks, idx, idx+1)
		return changed(models.Tasks, actor, "task_deleted", "Deleted task: "+title), nil
	})
}
