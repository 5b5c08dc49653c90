package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Anu1650/team-mange-sam/internal/models"
	"github.com/Anu1650/team-mange-sam/internal/store"
)

// CreateUser はチームメンバーを追加します
// アバターは名前の先頭1文字（大文字）、ステータスは offline で作成されます
func (s *Service) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	if err := required("name", u.Name); err != nil {
		return models.User{}, err
	}
	if err := validateRole(u.Role); err != nil {
		return models.User{}, err
	}

	u.ID = s.newID()
	u.Avatar = avatarOf(u.Name)
	u.Status = "offline"
	u.CreatedAt = s.timestamp()

	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		d.Users = append(d.Users, u)
		return changed(models.Users, u.CreatedBy, "user_created", "Created user: "+u.Name), nil
	})
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// UpdateUser はメンバー情報を部分更新します
func (s *Service) UpdateUser(ctx context.Context, id string, patch Patch) (models.User, error) {
	var out models.User
	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		idx := indexOf(d.Users, func(u models.User) string { return u.ID }, id)
		if idx < 0 {
			return store.Change{}, notFound("user")
		}
		u := d.Users[idx]
		if err := mergePatch(&u, patch); err != nil {
			return store.Change{}, err
		}
		if err := required("name", u.Name); err != nil {
			return store.Change{}, err
		}
		if err := validateRole(u.Role); err != nil {
			return store.Change{}, err
		}
		if _, renamed := patch["name"]; renamed {
			u.Avatar = avatarOf(u.Name)
		}
		d.Users[idx] = u
		out = u
		return changed(models.Users, patch.StringField("updatedBy"), "user_updated", "Updated user: "+u.Name), nil
	})
	return out, err
}

func validateRole(role string) error {
	if role == "" {
		return nil
	}
	if _, ok := models.Roles[role]; !ok {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	return nil
}

func avatarOf(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return ""
	}
	return strings.ToUpper(string(r))
}
