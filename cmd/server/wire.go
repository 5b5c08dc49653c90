package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Anu1650/team-mange-sam/internal/config"
	"github.com/Anu1650/team-mange-sam/internal/repo"
)

// openRepo は設定されたドライバーのリポジトリを作成します
// 戻り値の close はサーバー終了時に呼び出します
func openRepo(ctx context.Context, cfg config.Config) (repo.DatasetRepo, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			PoolSize:     10,              // 接続プールサイズ
			MinIdleConns: 5,               // 最小アイドル接続数
			MaxRetries:   3,               // リトライ回数
			DialTimeout:  5 * time.Second, // 接続タイムアウト
			ReadTimeout:  3 * time.Second, // 読み込みタイムアウト
			WriteTimeout: 3 * time.Second, // 書き込みタイムアウト
			PoolTimeout:  4 * time.Second, // プールからの取得タイムアウト
		})

		// Redis接続確認
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Println("connected to redis")

		closeFn := func() {
			if err := rdb.Close(); err != nil {
				log.Printf("redis close error: %v", err)
			}
		}
		return repo.NewRedisDatasetRepo(rdb, cfg.RedisKey), closeFn, nil

	case config.DriverFile:
		r, err := repo.NewFileDatasetRepo(cfg.DataFile)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("using data file %s", r.Path())
		return r, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
