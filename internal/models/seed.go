package models

// Role はロールのメタデータです（権限の強制は行いません）
type Role struct {
	Level       int      `json:"level"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// Roles はロールキーからメタデータへの対応表です
var Roles = map[string]Role{
	"chairman":  {Level: 1, Name: "Chairman", Permissions: []string{"all"}},
	"ceo":       {Level: 2, Name: "CEO", Permissions: []string{"projects", "tasks", "team", "clients", "finance", "reports", "approvals"}},
	"cto":       {Level: 3, Name: "CTO", Permissions: []string{"projects", "tasks", "team", "clients", "approvals"}},
	"cfo":       {Level: 3, Name: "CFO", Permissions: []string{"finance", "reports", "approvals"}},
	"hr":        {Level: 4, Name: "HR", Permissions: []string{"team", "approvals"}},
	"developer": {Level: 5, Name: "Developer", Permissions: []string{"tasks", "projects"}},
	"intern":    {Level: 6, Name: "Intern", Permissions: []string{"tasks"}},
}

// DefaultDataset は永続化データが存在しない場合の初期データセットです
func DefaultDataset() Dataset {
	d := Dataset{
		Users: []User{
			{ID: "1", Name: "Samarth Jadhav", Role: "chairman", Email: "samarth@zerobytes.com", Phone: "9876543210", Avatar: "S", Status: "online", Department: "Management", Designation: "Chairman", JoinedDate: "2024-01-01"},
			{ID: "2", Name: "Shubham Bodake", Role: "ceo", Email: "shubham@zerobytes.com", Phone: "9876543211", Avatar: "B", Status: "online", Department: "Management", Designation: "CEO", JoinedDate: "2024-01-15"},
			{ID: "3", Name: "Aniket", Role: "developer", Email: "aniket@zerobytes.com", Phone: "9876543212", Avatar: "A", Status: "online", Department: "Technical", Designation: "Technical Lead", JoinedDate: "2024-02-01"},
			{ID: "4", Name: "Keshav", Role: "developer", Email: "keshav@zerobytes.com", Phone: "9876543213", Avatar: "K", Status: "away", Department: "Operations", Designation: "Operations Manager", JoinedDate: "2024-02-15"},
			{ID: "5", Name: "Amar", Role: "cfo", Email: "amar@zerobytes.com", Phone: "9876543214", Avatar: "A", Status: "online", Department: "Finance", Designation: "CFO", JoinedDate: "2024-03-01"},
			{ID: "6", Name: "Shreyash", Role: "cto", Email: "shreyash@zerobytes.com", Phone: "9876543215", Avatar: "S", Status: "online", Department: "Technical", Designation: "CTO", JoinedDate: "2024-03-15"},
		},
	}
	d.ApplyDefaults()
	return d
}
