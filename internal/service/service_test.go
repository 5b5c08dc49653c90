package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anu1650/team-mange-sam/internal/models"
	"github.com/Anu1650/team-mange-sam/internal/repo"
	"github.com/Anu1650/team-mange-sam/internal/store"
)

type recorder struct {
	mu     sync.Mutex
	topics []string
}

func (p *recorder) Publish(topic string, _ any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
}

func (p *recorder) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

// flakyRepo はファイル保存をラップし、failが立っている間は保存に失敗します
type flakyRepo struct {
	repo.DatasetRepo
	mu   sync.Mutex
	fail bool
}

func (r *flakyRepo) Save(ctx context.Context, d models.Dataset) error {
	r.mu.Lock()
	fail := r.fail
	r.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return r.DatasetRepo.Save(ctx, d)
}

type fixture struct {
	svc  *Service
	repo *flakyRepo
	pub  *recorder
}

func newFixture(t *testing.T, users int) fixture {
	t.Helper()

	fileRepo, err := repo.NewFileDatasetRepo(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	d := models.DefaultDataset()
	d.Users = d.Users[:users]
	require.NoError(t, fileRepo.Save(context.Background(), d))

	r := &flakyRepo{DatasetRepo: fileRepo}
	pub := &recorder{}
	st, err := store.Open(context.Background(), r, pub)
	require.NoError(t, err)

	svc := New(st)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return fixture{svc: svc, repo: r, pub: pub}
}

func patchOf(t *testing.T, v map[string]any) Patch {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var p Patch
	require.NoError(t, json.Unmarshal(b, &p))
	return p
}

func auditActions(svc *Service) []string {
	var out []string
	for _, l := range svc.AuditReport() {
		out = append(out, l.Action)
	}
	return out
}

func TestCreateUserDerivesAvatarAndStatus(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)

	u, err := f.svc.CreateUser(context.Background(), models.User{Name: "priya", Role: "hr", Status: "online"})
	require.NoError(t, err)

	assert.Equal(t, "id-1", u.ID)
	assert.Equal(t, "P", u.Avatar)
	assert.Equal(t, "offline", u.Status)
	assert.Equal(t, "2024-06-01T12:00:00Z", u.CreatedAt)
	assert.Len(t, f.svc.List(models.Users), 7)
	assert.Equal(t, []string{"users-updated", "auditLogs-updated"}, f.pub.published())

	logs := f.svc.AuditReport()
	require.Len(t, logs, 1)
	assert.Equal(t, "system", logs[0].UserID)
	assert.Equal(t, "Created user: priya", logs[0].Details)
}

func TestCreateUserValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)

	_, err := f.svc.CreateUser(context.Background(), models.User{Name: "  "})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.CreateUser(context.Background(), models.User{Name: "x", Role: "emperor"})
	require.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, f.pub.published())
}

func TestUpdateKeepsIdentityFields(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	ctx := context.Background()

	task, err := f.svc.CreateTask(ctx, models.Task{Title: "write docs", CreatedBy: "3"})
	require.NoError(t, err)

	updated, err := f.svc.UpdateTask(ctx, task.ID, patchOf(t, map[string]any{
		"id":        "hijacked",
		"createdAt": "1999-01-01",
		"status":    "review",
		"updatedBy": "4",
	}))
	require.NoError(t, err)

	assert.Equal(t, task.ID, updated.ID)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "review", updated.Status)
	assert.Equal(t, "write docs", updated.Title)
	assert.Equal(t, "4", updated.UpdatedBy)
	assert.Equal(t, []string{"task_updated", "task_created"}, auditActions(f.svc))
	assert.Equal(t, "4", f.svc.AuditReport()[0].UserID)
}

func TestUpdateRejectsBadFieldTypes(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	ctx := context.Background()

	task, err := f.svc.CreateTask(ctx, models.Task{Title: "t"})
	require.NoError(t, err)

	_, err = f.svc.UpdateTask(ctx, task.ID, patchOf(t, map[string]any{"title": 42}))
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.UpdateTask(ctx, task.ID, patchOf(t, map[string]any{"status": "someday"}))
	require.ErrorIs(t, err, ErrValidation)
}

func TestNotFound(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	ctx := context.Background()

	_, err := f.svc.UpdateTask(ctx, "missing", Patch{})
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "task not found")

	require.ErrorIs(t, f.svc.DeleteTask(ctx, "missing", ""), ErrNotFound)

	_, err = f.svc.Vote(ctx, "missing", VoteRequest{UserID: "1", Vote: "approve"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.AddMilestone(ctx, "missing", models.Milestone{Title: "m"}, "")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.RespondApproval(ctx, "missing", ApprovalResponse{Status: "approved"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	ctx := context.Background()

	a, err := f.svc.CreateTask(ctx, models.Task{Title: "a"})
	require.NoError(t, err)
	b, err := f.svc.CreateTask(ctx, models.Task{Title: "b"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteTask(ctx, a.ID, "2"))

	tasks := f.svc.List(models.Tasks).([]models.Task)
	require.Len(t, tasks, 1)
	assert.Equal(t, b.ID, tasks[0].ID)
	assert.Equal(t, "Deleted task: a", f.svc.AuditReport()[0].Details)
}

func TestProjectDefaultsAndMilestones(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	ctx := context.Background()

	p, err := f.svc.CreateProject(ctx, models.Project{Name: "Portal", Status: "active", Progress: 80, Budget: 5000})
	require.NoError(t, err)
	assert.Equal(t, "planning", p.Status)
	assert.Equal(t, 0, p.Progress)
	assert.NotNil(t, p.Milestones)

	m, err := f.svc.AddMilestone(ctx, p.ID, models.Milestone{Title: "MVP"}, "1")
	require.NoError(t, err)
	assert.Equal(t, "pending", m.Status)

	projects := f.svc.List(models.Projects).([]models.Project)
	require.Len(t, projects[0].Milestones, 1)
	assert.Equal(t, "MVP", projects[0].Milestones[0].Title)

	_, err = f.svc.UpdateProject(ctx, p.ID, patchOf(t, map[string]any{"progress": 150}))
	require.ErrorIs(t, err, ErrValidation)
}

func TestRespondApproval(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	ctx := context.Background()

	a, err := f.svc.CreateApproval(ctx, models.Approval{Type: "leave", Title: "Vacation", RequestedBy: "3"})
	require.NoError(t, err)
	assert.Equal(t, "pending", a.Status)

	_, err = f.svc.RespondApproval(ctx, a.ID, ApprovalResponse{Status: "maybe"})
	require.ErrorIs(t, err, ErrValidation)

	got, err := f.svc.RespondApproval(ctx, a.ID, ApprovalResponse{Status: "rejected", Comments: "busy quarter", RespondedBy: "2"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", got.Status)
	assert.Equal(t, "busy quarter", got.ApproverComments)
	assert.NotEmpty(t, got.RespondedAt)

	logs := f.svc.AuditReport()
	assert.Equal(t, "approval_rejected", logs[0].Action)
	assert.Equal(t, "Responded to leave: Vacation", logs[0].Details)
	assert.Equal(t, "2", logs[0].UserID)
}

func TestAnnouncementsArePrepended(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	ctx := context.Background()

	for _, title := range []string{"first", "second"} {
		_, err := f.svc.PostAnnouncement(ctx, models.Announcement{Title: title, Pinned: true})
		require.NoError(t, err)
	}

	list := f.svc.List(models.Announcements).([]models.Announcement)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.False(t, list[0].Pinned)
}

func TestMeetingUpdateWritesNoAudit(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	ctx := context.Background()

	m, err := f.svc.CreateMeeting(ctx, models.Meeting{Title: "Standup"})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", m.Status)

	updated, err := f.svc.UpdateMeeting(ctx, m.ID, patchOf(t, map[string]any{"status": "live", "notes": "n"}))
	require.NoError(t, err)
	assert.Equal(t, "live", updated.Status)
	assert.Equal(t, []string{"meeting_scheduled"}, auditActions(f.svc))
}

func TestMessagesBroadcastWithoutAudit(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)

	_, err := f.svc.PostMessage(context.Background(), models.Message{UserID: "1", Text: "hi"})
	require.NoError(t, err)

	assert.Equal(t, []string{"messages-updated"}, f.pub.published())
	assert.Empty(t, f.svc.AuditReport())
}

func TestPersistenceFailureIsReported(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	f.repo.fail = true

	_, err := f.svc.CreateTask(context.Background(), models.Task{Title: "lost"})
	require.ErrorIs(t, err, ErrPersistence)

	assert.Empty(t, f.svc.List(models.Tasks))
	assert.Empty(t, f.pub.published())
}

func TestAmountAcceptsNumericStrings(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)

	var e models.Expense
	require.NoError(t, json.Unmarshal([]byte(`{"description":"laptop","amount":"1500.50"}`), &e))

	got, err := f.svc.CreateExpense(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, models.Amount(1500.5), got.Amount)
	assert.Equal(t, "Added expense: laptop - ₹1500.5", f.svc.AuditReport()[0].Details)
}

func TestNonFiniteAmountIsValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	ctx := context.Background()

	_, err := f.svc.CreateExpense(ctx, models.Expense{Description: "x", Amount: models.Amount(math.NaN())})
	require.ErrorIs(t, err, ErrValidation)
	_, err = f.svc.CreateIncome(ctx, models.Income{Description: "x", Amount: models.Amount(math.Inf(1))})
	require.ErrorIs(t, err, ErrValidation)
	_, err = f.svc.CreateProject(ctx, models.Project{Name: "x", Budget: models.Amount(math.Inf(1))})
	require.ErrorIs(t, err, ErrValidation)

	e, err := f.svc.CreateExpense(ctx, models.Expense{Description: "lunch", Amount: 20})
	require.NoError(t, err)
	for _, amount := range []string{"NaN", "Inf", "+Inf"} {
		_, err = f.svc.UpdateExpense(ctx, e.ID, patchOf(t, map[string]any{"amount": amount}))
		require.ErrorIs(t, err, ErrValidation, amount)
		require.NotErrorIs(t, err, ErrPersistence, amount)
	}

	expenses := f.svc.List(models.Expenses).([]models.Expense)
	require.Len(t, expenses, 1)
	assert.Equal(t, models.Amount(20), expenses[0].Amount)
}

func TestClientCreateAndUpdate(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)
	ctx := context.Background()

	c, err := f.svc.CreateClient(ctx, models.Client{CompanyName: "Acme", Status: "lost", Projects: []string{"p"}})
	require.NoError(t, err)
	assert.Equal(t, "active", c.Status)
	assert.Empty(t, c.Projects)

	updated, err := f.svc.UpdateClient(ctx, c.ID, patchOf(t, map[string]any{"contactPerson": "Wile", "projects": []string{"p1"}}))
	require.NoError(t, err)
	assert.Equal(t, "Wile", updated.ContactPerson)
	assert.Equal(t, []string{"p1"}, updated.Projects)
	assert.Equal(t, "Acme", updated.CompanyName)

	_, err = f.svc.UpdateClient(ctx, c.ID, patchOf(t, map[string]any{"companyName": ""}))
	require.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, []string{"client_updated", "client_created"}, auditActions(f.svc))
}

func TestUploadFileRecordsMetadata(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 6)

	file, err := f.svc.UploadFile(context.Background(), models.File{Name: "plan.pdf", UploadedBy: "5"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01T12:00:00Z", file.UploadedAt)

	logs := f.svc.AuditReport()
	require.Len(t, logs, 1)
	assert.Equal(t, "file_uploaded", logs[0].Action)
	assert.Equal(t, "5", logs[0].UserID)
}
