// Package service はビジネスロジックを担当します
// 各操作は store.Store.Mutate を通して1件ずつ直列に適用され、
// 永続化が成功した後にだけ影響を受けたコレクションが配信されます
package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Anu1650/team-mange-sam/internal/idgen"
	"github.com/Anu1650/team-mange-sam/internal/models"
	"github.com/Anu1650/team-mange-sam/internal/store"
)

// Service はチーム管理のビジネスロジックを提供します
type Service struct {
	store *store.Store
	now   func() time.Time
	newID func() string
}

// New は新しいServiceを作成します
func New(st *store.Store) *Service {
	return &Service{store: st, now: time.Now, newID: idgen.NewRecordID}
}

// List は指定コレクションの現在の全件を返します
func (s *Service) List(r models.Resource) any {
	return s.store.Snapshot(r)
}

// Roles はロールのメタデータを返します
func (s *Service) Roles() map[string]models.Role {
	return models.Roles
}

// Patch は更新リクエストのフィールド集合です
// 指定されたフィールドだけが既存レコードに上書きされます
type Patch map[string]json.RawMessage

// StringField はフィールドを文字列として取り出します。存在しないか文字列でなければ空文字です
func (p Patch) StringField(key string) string {
	raw, ok := p[key]
	if !ok {
		return ""
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return v
}

// 更新で書き換えられないフィールド
var immutableFields = map[string]struct{}{
	"id":        {},
	"createdAt": {},
}

// mergePatch はpatchのフィールドをrecに浅くマージします
// id と createdAt は無視されます。型が合わないフィールドがあればrecは変更しません
func mergePatch[T any](rec *T, patch Patch) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	for k, v := range patch {
		if _, immutable := immutableFields[k]; immutable {
			continue
		}
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode patch: %w", err)
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	*rec = out
	return nil
}

// indexOf はidが一致するレコードの位置を返します。見つからなければ -1
func indexOf[T any](items []T, id func(T) string, want string) int {
	for i, item := range items {
		if id(item) == want {
			return i
		}
	}
	return -1
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return nil
}

func notFound(kind string) error {
	return fmt.Errorf("%s %w", kind, ErrNotFound)
}

func changed(r models.Resource, actor, action, details string) store.Change {
	return store.Change{
		Resources: []models.Resource{r},
		Audit:     &store.AuditEntry{Actor: actor, Action: action, Details: details},
	}
}

func changedOnly(r models.Resource) store.Change {
	return store.Change{Resources: []models.Resource{r}}
}
