// Package models はアプリケーションで使用するデータ構造を定義します
// すべてのレコードは1つのデータセット（Dataset）に保持され、JSONでそのまま永続化・配信されます
package models

// User はチームメンバーの情報を表します
type User struct {
	ID          string `json:"id"`                    // ユーザーの一意な識別子
	Name        string `json:"name"`                  // 表示名
	Role        string `json:"role"`                  // ロールキー（chairman, ceo など）
	Email       string `json:"email,omitempty"`       // メールアドレス
	Phone       string `json:"phone,omitempty"`       // 電話番号
	Avatar      string `json:"avatar"`                // アバター文字（名前の先頭1文字）
	Status      string `json:"status"`                // online / away / offline
	Department  string `json:"department,omitempty"`  // 部署
	Designation string `json:"designation,omitempty"` // 役職
	JoinedDate  string `json:"joinedDate,omitempty"`  // 入社日
	CreatedBy   string `json:"createdBy,omitempty"`
	UpdatedBy   string `json:"updatedBy,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// Task はカンバンのタスクを表します
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Assignee    string `json:"assignee,omitempty"` // 担当ユーザーID
	Project     string `json:"project,omitempty"`  // プロジェクトID
	Priority    string `json:"priority,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Status      string `json:"status"` // todo / inprogress / review / done
	CreatedBy   string `json:"createdBy,omitempty"`
	UpdatedBy   string `json:"updatedBy,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// Milestone はプロジェクト内のマイルストーンです
type Milestone struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	DueDate string `json:"dueDate,omitempty"`
	Status  string `json:"status"`
}

// Project はクライアント向けプロジェクトを表します
type Project struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Client      string      `json:"client,omitempty"` // クライアントID
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status"` // planning / active / completed ...
	DueDate     string      `json:"dueDate,omitempty"`
	Budget      Amount      `json:"budget"`
	Progress    int         `json:"progress"`
	Milestones  []Milestone `json:"milestones"`
	CreatedBy   string      `json:"createdBy,omitempty"`
	UpdatedBy   string      `json:"updatedBy,omitempty"`
	CreatedAt   string      `json:"createdAt"`
}

// Client はCRMの取引先を表します
type Client struct {
	ID            string   `json:"id"`
	CompanyName   string   `json:"companyName"`
	ContactPerson string   `json:"contactPerson,omitempty"`
	Email         string   `json:"email,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Address       string   `json:"address,omitempty"`
	Status        string   `json:"status"`
	Projects      []string `json:"projects"`
	Contacts      []string `json:"contacts"`
	CreatedBy     string   `json:"createdBy,omitempty"`
	UpdatedBy     string   `json:"updatedBy,omitempty"`
	CreatedAt     string   `json:"createdAt"`
}

// Approval は承認申請（休暇・経費・購買など）を表します
type Approval struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	Amount           Amount `json:"amount"`
	RequestedBy      string `json:"requestedBy,omitempty"`
	RequestedByName  string `json:"requestedByName,omitempty"`
	Status           string `json:"status"` // pending / approved / rejected
	ApproverComments string `json:"approverComments"`
	RespondedBy      string `json:"respondedBy,omitempty"`
	RespondedAt      string `json:"respondedAt,omitempty"`
	CreatedAt        string `json:"createdAt"`
}

// Expense は経費の記録です
type Expense struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Amount      Amount `json:"amount"`
	Date        string `json:"date,omitempty"`
	Status      string `json:"status"`
	CreatedBy   string `json:"createdBy,omitempty"`
	UpdatedBy   string `json:"updatedBy,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// Income は売上・入金の記録です
type Income struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Source      string `json:"source,omitempty"`
	Amount      Amount `json:"amount"`
	Date        string `json:"date,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// Message はチャットメッセージです
type Message struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName,omitempty"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// Announcement は全体告知です
type Announcement struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
	CreatedBy string `json:"createdBy,omitempty"`
	UserName  string `json:"userName,omitempty"`
	Pinned    bool   `json:"pinned"`
	CreatedAt string `json:"createdAt"`
}

// Meeting はミーティングを表します
// ミーティングIDはビデオ通話のルームIDとしても使われます
type Meeting struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	DateTime     string   `json:"dateTime,omitempty"`
	Agenda       string   `json:"agenda"`
	Notes        string   `json:"notes"`
	Participants []string `json:"participants"`
	Status       string   `json:"status"` // scheduled / live / ended
	CreatedBy    string   `json:"createdBy,omitempty"`
	CreatedAt    string   `json:"createdAt"`
}

// File は共有ファイルのメタデータです（実体は保持しません）
type File struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Category       string `json:"category,omitempty"`
	UploadedBy     string `json:"uploadedBy,omitempty"`
	UploadedByName string `json:"uploadedByName,omitempty"`
	UploadedAt     string `json:"uploadedAt"`
}

// AuditLog は監査ログの1エントリです
type AuditLog struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
}
