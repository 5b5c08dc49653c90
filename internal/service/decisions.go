package service

import (
	"context"
	"fmt"

	"github.com/Anu1650/team-mange-sam/internal/models"
	"github.com/Anu1650/team-mange-sam/internal/store"
)

// VoteRequest は意思決定への投票です
type VoteRequest struct {
	UserID string `json:"userId"`
	Vote   string `json:"vote"` // approve / reject
}

// CommentRequest は意思決定へのコメントです
type CommentRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Text     string `json:"text"`
}

// CreateDecision は投票にかける意思決定を作成します
func (s *Service) CreateDecision(ctx context.Context, dec models.Decision) (models.Decision, error) {
	if err := required("title", dec.Title); err != nil {
		return models.Decision{}, err
	}

	dec.ID = s.newID()
	dec.Status = models.DecisionPending
	dec.Votes = []models.Vote{}
	dec.Comments = []models.Comment{}
	dec.CreatedAt = s.timestamp()

	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		d.Decisions = append(d.Decisions, dec)
		return changedOnly(models.Decisions), nil
	})
	if err != nil {
		return models.Decision{}, err
	}
	return dec, nil
}

// Vote は投票を記録し、ステータスを再計算します
// 処理の流れ:
// 1. 同じユーザーの既存投票があれば置き換え、なければ追加
// 2. 反対票が1つでもあれば rejected
// 3. そうでなく賛成票が現在のユーザー数の過半数（切り上げ）以上なら approved
// 4. それ以外は pending
func (s *Service) Vote(ctx context.Context, decisionID string, req VoteRequest) (models.Decision, error) {
	if err := required("userId", req.UserID); err != nil {
		return models.Decision{}, err
	}
	if req.Vote != models.VoteApprove && req.Vote != models.VoteReject {
		return models.Decision{}, fmt.Errorf("%w: vote must be approve or reject", ErrValidation)
	}

	var out models.Decision
	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		idx := indexOf(d.Decisions, func(dec models.Decision) string { return dec.ID }, decisionID)
		if idx < 0 {
			return store.Change{}, notFound("decision")
		}
		dec := &d.Decisions[idx]
		dec.CastVote(req.UserID, req.Vote)
		dec.Evaluate(len(d.Users))
		out = *dec
		return changedOnly(models.Decisions), nil
	})
	return out, err
}

// Comment は意思決定にコメントを追加します
func (s *Service) Comment(ctx context.Context, decisionID string, req CommentRequest) (models.Decision, error) {
	if err := required("text", req.Text); err != nil {
		return models.Decision{}, err
	}

	c := models.Comment{
		ID:        s.newID(),
		UserID:    req.UserID,
		UserName:  req.UserName,
		Text:      req.Text,
		CreatedAt: s.timestamp(),
	}

	var out models.Decision
	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		idx := indexOf(d.Decisions, func(dec models.Decision) string { return dec.ID }, decisionID)
		if idx < 0 {
			return store.Change{}, notFound("decision")
		}
		d.Decisions[idx].Comments = append(d.Decisions[idx].Comments, c)
		out = d.Decisions[idx]
		return changedOnly(models.Decisions), nil
	})
	return out, err
}
