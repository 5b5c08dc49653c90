package models

import (
	"encoding/json"
	"fmt"
)

// Resource は共有コレクションの種類です
// 永続化ドキュメントのキー名と配信トピック名の元になります
type Resource string

const (
	Users         Resource = "users"
	Tasks         Resource = "tasks"
	Projects      Resource = "projects"
	Clients       Resource = "clients"
	Decisions     Resource = "decisions"
	Approvals     Resource = "approvals"
	Expenses      Resource = "expenses"
	Incomes       Resource = "income"
	Messages      Resource = "messages"
	Announcements Resource = "announcements"
	Meetings      Resource = "meetings"
	Files         Resource = "files"
	AuditLogs     Resource = "auditLogs"
)

// AllResources はすべての共有コレクションです
var AllResources = []Resource{
	Users, Tasks, Projects, Clients, Decisions, Approvals, Expenses,
	Incomes, Messages, Announcements, Meetings, Files, AuditLogs,
}

// Topic はスナップショット配信に使うチャネル名を返します（例: "tasks-updated"）
func (r Resource) Topic() string {
	return string(r) + "-updated"
}

// Dataset はプロセス全体で共有される唯一のデータセットです
// JSONのキー構成がそのまま永続化ドキュメントのレイアウトになります
type Dataset struct {
	Users         []User         `json:"users"`
	Tasks         []Task         `json:"tasks"`
	Decisions     []Decision     `json:"decisions"`
	Projects      []Project      `json:"projects"`
	Clients       []Client       `json:"clients"`
	Messages      []Message      `json:"messages"`
	Announcements []Announcement `json:"announcements"`
	Meetings      []Meeting      `json:"meetings"`
	Approvals     []Approval     `json:"approvals"`
	Expenses      []Expense      `json:"expenses"`
	Income        []Income       `json:"income"`
	Files         []File         `json:"files"`
	AuditLogs     []AuditLog     `json:"auditLogs"`
}

// Snapshot は指定コレクションの現在の全件を返します
func (d *Dataset) Snapshot(r Resource) any {
	switch r {
	case Users:
		return d.Users
	case Tasks:
		return d.Tasks
	case Projects:
		return d.Projects
	case Clients:
		return d.Clients
	case Decisions:
		return d.Decisions
	case Approvals:
		return d.Approvals
	case Expenses:
		return d.Expenses
	case Incomes:
		return d.Income
	case Messages:
		return d.Messages
	case Announcements:
		return d.Announcements
	case Meetings:
		return d.Meetings
	case Files:
		return d.Files
	case AuditLogs:
		return d.AuditLogs
	default:
		panic(fmt.Sprintf("models: unknown resource %q", r))
	}
}

// ApplyDefaults はnilのコレクションを空スライスに揃えます
// 配信・保存時に null ではなく [] を出力するためです
func (d *Dataset) ApplyDefaults() {
	d.Users = nonNil(d.Users)
	d.Tasks = nonNil(d.Tasks)
	d.Decisions = nonNil(d.Decisions)
	d.Projects = nonNil(d.Projects)
	d.Clients = nonNil(d.Clients)
	d.Messages = nonNil(d.Messages)
	d.Announcements = nonNil(d.Announcements)
	d.Meetings = nonNil(d.Meetings)
	d.Approvals = nonNil(d.Approvals)
	d.Expenses = nonNil(d.Expenses)
	d.Income = nonNil(d.Income)
	d.Files = nonNil(d.Files)
	d.AuditLogs = nonNil(d.AuditLogs)
}

// Clone はデータセットのディープコピーを返します
func (d *Dataset) Clone() (Dataset, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return Dataset{}, fmt.Errorf("encode dataset: %w", err)
	}
	var out Dataset
	if err := json.Unmarshal(b, &out); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	out.ApplyDefaults()
	return out, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
