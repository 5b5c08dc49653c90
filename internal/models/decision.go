package models

// 投票の選択肢
const (
	VoteApprove = "approve"
	VoteReject  = "reject"
)

// 意思決定のステータス
const (
	DecisionPending  = "pending"
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// Vote は意思決定に対する1ユーザーの投票です
// 同じユーザーの再投票は既存の投票を上書きします
type Vote struct {
	UserID string `json:"userId"`
	Vote   string `json:"vote"`
}

// Comment は意思決定へのコメントです
type Comment struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName,omitempty"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// Decision は投票で決める経営上の意思決定です
type Decision struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	Status      string    `json:"status"`
	Votes       []Vote    `json:"votes"`
	Comments    []Comment `json:"comments"`
	CreatedAt   string    `json:"createdAt"`
}

// CastVote はuserIdの投票を記録します
// 既に投票済みなら同じ位置の投票を置き換え、未投票なら末尾に追加します
func (d *Decision) CastVote(userID, choice string) {
	for i := range d.Votes {
		if d.Votes[i].UserID == userID {
			d.Votes[i].Vote = choice
			return
		}
	}
	d.Votes = append(d.Votes, Vote{UserID: userID, Vote: choice})
}

// Tally は賛成票と反対票の数を返します
func (d *Decision) Tally() (approves, rejects int) {
	for _, v := range d.Votes {
		switch v.Vote {
		case VoteApprove:
			approves++
		case VoteReject:
			rejects++
		}
	}
	return approves, rejects
}

// ApprovalThreshold は現在のユーザー数に対する過半数（切り上げ）を返します
func ApprovalThreshold(totalUsers int) int {
	return (totalUsers + 1) / 2
}

// Evaluate は投票結果からステータスを再計算します
// 反対票が1つでも残っていれば rejected、賛成票がしきい値に達していれば approved、
// それ以外は pending です
func (d *Decision) Evaluate(totalUsers int) {
	approves, rejects := d.Tally()
	switch {
	case rejects > 0:
		d.Status = DecisionRejected
	case approves >= ApprovalThreshold(totalUsers):
		d.Status = DecisionApproved
	default:
		d.Status = DecisionPending
	}
}
