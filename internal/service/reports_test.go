package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anu1650/team-mange-sam/internal/models"
)

func TestDashboard(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	ctx := context.Background()

	_, err := f.svc.CreateTask(ctx, models.Task{Title: "a", Status: "done"})
	require.NoError(t, err)
	_, err = f.svc.CreateTask(ctx, models.Task{Title: "b"})
	require.NoError(t, err)

	e1, err := f.svc.CreateExpense(ctx, models.Expense{Description: "rent", Amount: 300})
	require.NoError(t, err)
	_, err = f.svc.CreateExpense(ctx, models.Expense{Description: "snacks", Amount: 20})
	require.NoError(t, err)
	_, err = f.svc.UpdateExpense(ctx, e1.ID, patchOf(t, map[string]any{"status": "approved"}))
	require.NoError(t, err)
	_, err = f.svc.CreateIncome(ctx, models.Income{Description: "invoice", Amount: 1000})
	require.NoError(t, err)
	_, err = f.svc.CreateApproval(ctx, models.Approval{Type: "purchase", Title: "GPU"})
	require.NoError(t, err)

	d := f.svc.Dashboard()
	assert.Equal(t, 2, d.Tasks.Total)
	assert.Equal(t, 1, d.Tasks.Completed)
	assert.Equal(t, 1, d.Tasks.Pending)
	assert.Equal(t, 1, d.Approvals.Pending)
	assert.InDelta(t, 320, d.Finance.Expenses, 0.001)
	assert.InDelta(t, 300, d.Finance.ApprovedExpenses, 0.001)
	assert.InDelta(t, 700, d.Finance.Balance, 0.001)
	assert.Equal(t, 6, d.Team.Total)
	assert.Equal(t, 5, d.Team.Online)
}

func TestAuditReportIsCappedNewestFirst(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	ctx := context.Background()

	for i := 0; i < auditReportLimit+5; i++ {
		_, err := f.svc.CreateIncome(ctx, models.Income{Description: "sale", Amount: models.Amount(i)})
		require.NoError(t, err)
	}

	logs := f.svc.AuditReport()
	require.Len(t, logs, auditReportLimit)
	assert.Equal(t, "Added income: sale - ₹104", logs[0].Details)
}
