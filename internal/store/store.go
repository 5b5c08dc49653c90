// Package store はプロセス全体で共有するデータセットを保持します
// データセットを書き換えられるのは Mutate だけで、すべての変更は
// 検証・適用 → 監査ログ追加 → 永続化 → スナップショット配信 の順に1件ずつ直列に実行されます
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Anu1650/team-mange-sam/internal/idgen"
	"github.com/Anu1650/team-mange-sam/internal/models"
	"github.com/Anu1650/team-mange-sam/internal/repo"
)

// ErrPersistence は永続化に失敗したことを表します
// このエラーが返った変更はメモリ上にも反映されず、配信もされません
var ErrPersistence = errors.New("persistence failure")

// Publisher は変更後のスナップショットを配信します
type Publisher interface {
	Publish(topic string, snapshot any)
}

// Change は1回の変更で影響を受けたコレクションと監査ログの内容です
type Change struct {
	Resources []models.Resource // 配信対象のコレクション（重複不可）
	Audit     *AuditEntry       // nilなら監査ログを書きません
}

// AuditEntry は監査ログに追記する内容です。IDと時刻はStoreが付与します
type AuditEntry struct {
	Actor   string
	Action  string
	Details string
}

// MutateFunc はデータセットのコピーを受け取って変更を適用します
// エラーを返した場合、コピーは破棄されます
type MutateFunc func(d *models.Dataset) (Change, error)

// Store は権威データセットを保持します
// データセットはコピーオンライトで、一度公開したスナップショットが書き換えられることはありません
type Store struct {
	mu   sync.Mutex
	data models.Dataset
	repo repo.DatasetRepo
	pub  Publisher

	now   func() time.Time
	newID func() string
}

// Open は保存済みのデータセットを読み込んでStoreを作成します
// 保存データが無い場合は初期データセットで開始し、その場で保存します
func Open(ctx context.Context, r repo.DatasetRepo, pub Publisher) (*Store, error) {
	d, ok, err := r.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	s := &Store{repo: r, pub: pub, now: time.Now, newID: idgen.NewRecordID}
	if !ok {
		log.Println("no persisted dataset, starting from defaults")
		d = models.DefaultDataset()
		if err := r.Save(ctx, d); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}
	d.ApplyDefaults()
	s.data = d
	return s, nil
}

// Mutate は1件の変更を実行します
// 処理の流れ:
// 1. 現在のデータセットをコピーし、fnで検証・変更を適用
// 2. 監査ログがあれば先頭（新しい順）に追加
// 3. データセット全体を同期的に永続化（失敗したらコピーを破棄して終了）
// 4. コピーを新しい権威データセットとして差し替え
// 5. 影響を受けたコレクションごとにスナップショットを1回ずつ配信
// ロックは配信まで保持するため、同じトピックの配信順は変更の確定順と一致します
// ctx は開始前にだけ確認します。開始後のキャンセルでは中断しません
func (s *Store) Mutate(ctx context.Context, fn MutateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.data.Clone()
	if err != nil {
		return err
	}

	change, err := fn(&next)
	if err != nil {
		return err
	}

	topics := change.Resources
	if change.Audit != nil {
		next.AuditLogs = append([]models.AuditLog{s.auditLog(*change.Audit)}, next.AuditLogs...)
		topics = appendResource(topics, models.AuditLogs)
	}
	next.ApplyDefaults()

	// 開始した変更は呼び出し元が切断しても最後まで確定させます
	if err := s.repo.Save(context.WithoutCancel(ctx), next); err != nil {
		log.Printf("Persist dataset error: %v", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.data = next
	for _, r := range topics {
		s.pub.Publish(r.Topic(), s.data.Snapshot(r))
	}
	return nil
}

// View は現在のデータセットを読み取り専用で渡します
// fn の中でデータセットを書き換えてはいけません
func (s *Store) View(fn func(d *models.Dataset)) {
	s.mu.Lock()
	d := s.data
	s.mu.Unlock()
	fn(&d)
}

// Snapshot は指定コレクションの現在の全件を返します（読み取り専用）
func (s *Store) Snapshot(r models.Resource) any {
	var out any
	s.View(func(d *models.Dataset) { out = d.Snapshot(r) })
	return out
}

// SavedAt は最後に永続化した時刻を返します
// リポジトリが保存時刻を記録しない場合はゼロ値です
func (s *Store) SavedAt(ctx context.Context) (time.Time, error) {
	t, ok := s.repo.(repo.SaveTimer)
	if !ok {
		return time.Time{}, nil
	}
	return t.SavedAt(ctx)
}

func (s *Store) auditLog(e AuditEntry) models.AuditLog {
	actor := e.Actor
	if actor == "" {
		actor = "system"
	}
	return models.AuditLog{
		ID:        s.newID(),
		UserID:    actor,
		Action:    e.Action,
		Details:   e.Details,
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
	}
}

func appendResource(rs []models.Resource, r models.Resource) []models.Resource {
	for _, existing := range rs {
		if existing == r {
			return rs
		}
	}
	out := make([]models.Resource, 0, len(rs)+1)
	out = append(out, rs...)
	return append(out, r)
}
