package service

import (
	"context"
	"fmt"

	"github.com/Anu1650/team-mange-sam/internal/models"
	"github.com/Anu1650/team-mange-sam/internal/store"
)

// ApprovalResponse は承認申請への回答です
type ApprovalResponse struct {
	Status      string `json:"status"`      // approved / rejected
	Comments    string `json:"comments"`    // 承認者コメント
	RespondedBy string `json:"respondedBy"` // 回答したユーザーID
}

// CreateApproval は承認申請を作成します。ステータスは pending です
func (s *Service) CreateApproval(ctx context.Context, a models.Approval) (models.Approval, error) {
	if err := required("title", a.Title); err != nil {
		return models.Approval{}, err
	}
	if err := required("type", a.Type); err != nil {
		return models.Approval{}, err
	}
	if err := validateAmount("amount", a.Amount); err != nil {
		return models.Approval{}, err
	}

	a.ID = s.newID()
	a.Status = "pending"
	a.ApproverComments = ""
	a.RespondedBy = ""
	a.RespondedAt = ""
	a.CreatedAt = s.timestamp()

	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		d.Approvals = append(d.Approvals, a)
		return changed(models.Approvals, a.RequestedBy, "approval_requested",
			fmt.Sprintf("Requested %s: %s", a.Type, a.Title)), nil
	})
	if err != nil {
		return models.Approval{}, err
	}
	return a, nil
}

// RespondApproval は申請を承認または却下します
// 監査ログのアクションは approval_approved / approval_rejected です
func (s *Service) RespondApproval(ctx context.Context, id string, resp ApprovalResponse) (models.Approval, error) {
	if resp.Status != "approved" && resp.Status != "rejected" {
		return models.Approval{}, fmt.Errorf("%w: status must be approved or rejected", ErrValidation)
	}

	var out models.Approval
	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		idx := indexOf(d.Approvals, func(a models.Approval) string { return a.ID }, id)
		if idx < 0 {
			return store.Change{}, notFound("approval")
		}
		a := &d.Approvals[idx]
		a.Status = resp.Status
		a.ApproverComments = resp.Comments
		a.RespondedBy = resp.RespondedBy
		a.RespondedAt = s.timestamp()
		out = *a
		return changed(models.Approvals, resp.RespondedBy, "approval_"+resp.Status,
			fmt.Sprintf("Responded to %s: %s", a.Type, a.Title)), nil
	})
	return out, err
}
