package service

import (
	"context"

	"github.com/Anu1650/team-mange-sam/internal/models"
	"github.com/Anu1650/team-mange-sam/internal/store"
)

// CreateClient は取引先を追加します。ステータスは active で作成されます
func (s *Service) CreateClient(ctx context.Context, c models.Client) (models.Client, error) {
	if err := required("companyName", c.CompanyName); err != nil {
		return models.Client{}, err
	}

	c.ID = s.newID()
	c.Status = "active"
	c.Projects = []string{}
	c.Contacts = []string{}
	c.CreatedAt = s.timestamp()

	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		d.Clients = append(d.Clients, c)
		return changed(models.Clients, c.CreatedBy, "client_created", "Created client: "+c.CompanyName), nil
	})
	if err != nil {
		return models.Client{}, err
	}
	return c, nil
}

func (s *Service) UpdateClient(ctx context.Context, id string, patch Patch) (models.Client, error) {
	var out models.Client
	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		idx := indexOf(d.Clients, func(c models.Client) string { return c.ID }, id)
		if idx < 0 {
			return store.Change{}, notFound("client")
		}
		c := d.Clients[idx]
		if err := mergePatch(&c, patch); err != nil {
			return store.Change{}, err
		}
		if err := required("companyName", c.CompanyName); err != nil {
			return store.Change{}, err
		}
		if c.Projects == nil {
			c.Projects = []string{}
		}
		if c.Contacts == nil {
			c.Contacts = []string{}
		}
		d.Clients[idx] = c
		out = c
		return changed(models.Clients, patch.StringField("updatedBy"), "client_updated", "Updated client: "+c.CompanyName), nil
	})
	return out, err
}
