// Package repo はデータセットの永続化を担当します
// データセットは1つのドキュメントとして毎回丸ごと上書き保存されます
package repo

import (
	"context"
	"time"

	"github.com/Anu1650/team-mange-sam/internal/models"
)

// DatasetRepo はデータセット全体を読み書きするリポジトリです
type DatasetRepo interface {
	// Load は保存済みのデータセットを返します。未保存の場合は ok=false を返します
	Load(ctx context.Context) (d models.Dataset, ok bool, err error)
	// Save はデータセット全体を同期的に上書き保存します
	Save(ctx context.Context, d models.Dataset) error
}

// SaveTimer は最後に保存した時刻を返せるリポジトリです
type SaveTimer interface {
	// SavedAt は最後に保存した時刻を返します。未保存の場合はゼロ値です
	SavedAt(ctx context.Context) (time.Time, error)
}
