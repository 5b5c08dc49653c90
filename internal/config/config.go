// Package config はアプリケーションの設定を管理します
// .env ファイル（存在する場合）と環境変数から設定を読み込み、デフォルト値を提供します
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// 保存先ドライバー
const (
	DriverFile  = "file"
	DriverRedis = "redis"
)

// Config はアプリケーションの設定を保持します
type Config struct {
	APIAddr       string   `env:"API_ADDR" envDefault:":3000"`            // APIサーバーのリッスンアドレス
	StoreDriver   string   `env:"STORE_DRIVER" envDefault:"file"`         // データセットの保存先（file / redis）
	DataFile      string   `env:"DATA_FILE" envDefault:"data.json"`       // file ドライバーの保存先
	RedisAddr     string   `env:"REDIS_ADDR" envDefault:"localhost:6379"` // Redisの接続先
	RedisKey      string   `env:"REDIS_KEY" envDefault:"teamhub:dataset"` // データセットを保存するキー
	AllowedOrigin []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`  // CORSで許可するオリジン一覧
	StaticDir     string   `env:"STATIC_DIR"`                             // フロントエンドの静的ファイル
	WSSendBuffer  int      `env:"WS_SEND_BUFFER" envDefault:"64"`         // 接続ごとの送信キューの長さ
}

// Load は .env ファイルと環境変数から設定を読み込みます
// envFile が存在しない場合は環境変数だけを使います
// 値の検証はコマンドラインでの上書き後に Validate で行います
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.AllowedOrigin = trimEmpty(cfg.AllowedOrigin)
	return cfg, nil
}

// Validate は設定値の組み合わせを検証します
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverFile:
		if strings.TrimSpace(c.DataFile) == "" {
			return errors.New("DATA_FILE required for file driver")
		}
	case DriverRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return errors.New("REDIS_ADDR required for redis driver")
		}
		if strings.TrimSpace(c.RedisKey) == "" {
			return errors.New("REDIS_KEY required for redis driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", c.StoreDriver, DriverFile, DriverRedis)
	}
	if c.WSSendBuffer <= 0 {
		return fmt.Errorf("WS_SEND_BUFFER must be positive, got %d", c.WSSendBuffer)
	}
	return nil
}

func trimEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
