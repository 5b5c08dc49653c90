package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Anu1650/team-mange-sam/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisDatasetRepo はデータセットをRedisの1キーにJSONで保存します
type RedisDatasetRepo struct {
	rdb *redis.Client
	key string
}

var (
	_ DatasetRepo = (*RedisDatasetRepo)(nil)
	_ SaveTimer   = (*RedisDatasetRepo)(nil)
)

func NewRedisDatasetRepo(rdb *redis.Client, key string) *RedisDatasetRepo {
	return &RedisDatasetRepo{rdb: rdb, key: key}
}

func savedAtKey(key string) string {
	return fmt.Sprintf("%s:savedAt", key)
}

func (rr *RedisDatasetRepo) Load(ctx context.Context) (models.Dataset, bool, error) {
	val, err := rr.rdb.Get(ctx, rr.key).Bytes()
	if errors.Is(err, redis.Nil) { // データがない
		return models.Dataset{}, false, nil
	}
	if err != nil {
		return models.Dataset{}, false, fmt.Errorf("redis get dataset: %w", err)
	}
	var d models.Dataset
	if err := json.Unmarshal(val, &d); err != nil {
		return models.Dataset{}, false, fmt.Errorf("decode dataset: %w", err)
	}
	d.ApplyDefaults()
	return d, true, nil
}

func (rr *RedisDatasetRepo) Save(ctx context.Context, d models.Dataset) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	// ドキュメント本体と保存時刻をアトミックに更新
	pipe := rr.rdb.TxPipeline()
	pipe.Set(ctx, rr.key, b, 0)
	pipe.Set(ctx, savedAtKey(rr.key), time.Now().UTC().Format(time.RFC3339Nano), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save dataset: %w", err)
	}
	return nil
}

// SavedAt は最後に保存された時刻を返します。未保存の場合はゼロ値です
func (rr *RedisDatasetRepo) SavedAt(ctx context.Context) (time.Time, error) {
	v, err := rr.rdb.Get(ctx, savedAtKey(rr.key)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, v)
}
