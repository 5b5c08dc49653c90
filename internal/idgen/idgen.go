// Package idgen はレコードIDと接続IDを生成します
package idgen

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewULID は時刻順に並ぶULIDを生成します
// WebSocket接続IDとして使用します（再接続のたびに新しい値になります）
func NewULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String()
}

// NewRecordID は共有コレクションのレコードIDを生成します
func NewRecordID() string {
	return uuid.NewString()
}
