package service

import (
	"context"
	"time"

	"github.com/Anu1650/team-mange-sam/internal/models"
)

// auditReportLimit は監査レポートで返す最新件数です
const auditReportLimit = 100

// Dashboard はダッシュボードの集計値です
type Dashboard struct {
	Tasks struct {
		Total     int `json:"total"`
		Completed int `json:"completed"`
		Pending   int `json:"pending"`
	} `json:"tasks"`
	Projects struct {
		Active int `json:"active"`
		Total  int `json:"total"`
	} `json:"projects"`
	Clients struct {
		Total int `json:"total"`
	} `json:"clients"`
	Approvals struct {
		Pending int `json:"pending"`
	} `json:"approvals"`
	Finance struct {
		Expenses         float64 `json:"expenses"`
		ApprovedExpenses float64 `json:"approvedExpenses"`
		Income           float64 `json:"income"`
		Balance          float64 `json:"balance"` // 収入 - 承認済み経費
	} `json:"finance"`
	Team struct {
		Total  int `json:"total"`
		Online int `json:"online"`
	} `json:"team"`
}

// Dashboard は現在のデータセットから集計値を計算します
func (s *Service) Dashboard() Dashboard {
	var out Dashboard
	s.store.View(func(d *models.Dataset) {
		out.Tasks.Total = len(d.Tasks)
		for _, t := range d.Tasks {
			if t.Status == "done" {
				out.Tasks.Completed++
			} else {
				out.Tasks.Pending++
			}
		}

		out.Projects.Total = len(d.Projects)
		for _, p := range d.Projects {
			if p.Status == "active" {
				out.Projects.Active++
			}
		}

		out.Clients.Total = len(d.Clients)

		for _, a := range d.Approvals {
			if a.Status == "pending" {
				out.Approvals.Pending++
			}
		}

		for _, e := range d.Expenses {
			out.Finance.Expenses += float64(e.Amount)
			if e.Status == "approved" {
				out.Finance.ApprovedExpenses += float64(e.Amount)
			}
		}
		for _, in := range d.Income {
			out.Finance.Income += float64(in.Amount)
		}
		out.Finance.Balance = out.Finance.Income - out.Finance.ApprovedExpenses

		out.Team.Total = len(d.Users)
		for _, u := range d.Users {
			if u.Status == "online" {
				out.Team.Online++
			}
		}
	})
	return out
}

// AuditReport は監査ログの最新100件を新しい順に返します
func (s *Service) AuditReport() []models.AuditLog {
	var out []models.AuditLog
	s.store.View(func(d *models.Dataset) {
		n := min(len(d.AuditLogs), auditReportLimit)
		out = make([]models.AuditLog, n)
		copy(out, d.AuditLogs[:n])
	})
	return out
}

// LastSavedAt はデータセットを最後に保存した時刻を返します
func (s *Service) LastSavedAt(ctx context.Context) (time.Time, error) {
	return s.store.SavedAt(ctx)
}
