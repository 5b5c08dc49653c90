package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anu1650/team-mange-sam/internal/models"
)

func vote(t *testing.T, svc *Service, id, user, choice string) models.Decision {
	t.Helper()
	d, err := svc.Vote(context.Background(), id, VoteRequest{UserID: user, Vote: choice})
	require.NoError(t, err)
	return d
}

func newDecision(t *testing.T, svc *Service) models.Decision {
	t.Helper()
	d, err := svc.CreateDecision(context.Background(), models.Decision{Title: "Hire two interns"})
	require.NoError(t, err)
	require.Equal(t, models.DecisionPending, d.Status)
	return d
}

func TestVoteMajorityOfSixUsers(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	d := newDecision(t, f.svc)

	assert.Equal(t, models.DecisionPending, vote(t, f.svc, d.ID, "1", "approve").Status)
	assert.Equal(t, models.DecisionPending, vote(t, f.svc, d.ID, "2", "approve").Status)
	assert.Equal(t, models.DecisionApproved, vote(t, f.svc, d.ID, "3", "approve").Status)
}

func TestVoteMajorityOfFiveUsers(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 5)
	d := newDecision(t, f.svc)

	vote(t, f.svc, d.ID, "1", "approve")
	assert.Equal(t, models.DecisionPending, vote(t, f.svc, d.ID, "2", "approve").Status)
	assert.Equal(t, models.DecisionApproved, vote(t, f.svc, d.ID, "3", "approve").Status)
}

func TestRevoteReplacesPreviousVote(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	d := newDecision(t, f.svc)

	vote(t, f.svc, d.ID, "1", "approve")
	assert.Equal(t, models.DecisionRejected, vote(t, f.svc, d.ID, "1", "reject").Status)
	got := vote(t, f.svc, d.ID, "1", "approve")

	require.Len(t, got.Votes, 1)
	assert.Equal(t, models.Vote{UserID: "1", Vote: "approve"}, got.Votes[0])
	assert.Equal(t, models.DecisionPending, got.Status)
}

func TestRejectTakesPrecedenceOverMajority(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	d := newDecision(t, f.svc)

	vote(t, f.svc, d.ID, "1", "reject")
	vote(t, f.svc, d.ID, "2", "approve")
	vote(t, f.svc, d.ID, "3", "approve")
	got := vote(t, f.svc, d.ID, "4", "approve")

	assert.Equal(t, models.DecisionRejected, got.Status)
}

func TestInvalidVoteChoice(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	d := newDecision(t, f.svc)

	_, err := f.svc.Vote(context.Background(), d.ID, VoteRequest{UserID: "1", Vote: "abstain"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Vote(context.Background(), d.ID, VoteRequest{Vote: "approve"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCommentAppends(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	d := newDecision(t, f.svc)

	got, err := f.svc.Comment(context.Background(), d.ID, CommentRequest{UserID: "2", UserName: "Shubham", Text: "agreed"})
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "agreed", got.Comments[0].Text)

	_, err = f.svc.Comment(context.Background(), d.ID, CommentRequest{UserID: "2"})
	require.ErrorIs(t, err, ErrValidation)
}
