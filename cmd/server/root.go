package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Anu1650/team-mange-sam/internal/config"
	"github.com/Anu1650/team-mange-sam/internal/handlers"
	httpx "github.com/Anu1650/team-mange-sam/internal/http"
	"github.com/Anu1650/team-mange-sam/internal/realtime"
	"github.com/Anu1650/team-mange-sam/internal/service"
	"github.com/Anu1650/team-mange-sam/internal/store"
)

// flagOverrides はコマンドラインで上書きする設定です（空なら環境変数の値を使います）
type flagOverrides struct {
	envFile  string
	addr     string
	dataFile string
	driver   string
}

func (f flagOverrides) apply(cfg *config.Config) {
	if f.addr != "" {
		cfg.APIAddr = f.addr
	}
	if f.dataFile != "" {
		cfg.DataFile = f.dataFile
	}
	if f.driver != "" {
		cfg.StoreDriver = f.driver
	}
}

// loadConfig は環境変数を読み込み、フラグで上書きしてから検証します
func loadConfig(flags flagOverrides) (config.Config, error) {
	cfg, err := config.Load(flags.envFile)
	if err != nil {
		return config.Config{}, err
	}
	flags.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	var flags flagOverrides

	rootCmd := &cobra.Command{
		Use:          "team-mange-sam",
		Short:        "Team management API server with realtime sync and meeting signaling",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (overrides API_ADDR)")
	serveCmd.Flags().StringVar(&flags.dataFile, "data-file", "", "dataset file for the file driver (overrides DATA_FILE)")
	serveCmd.Flags().StringVar(&flags.driver, "driver", "", "storage driver: file or redis (overrides STORE_DRIVER)")

	rootCmd.AddCommand(serveCmd)
	// サブコマンドなしで起動した場合は serve として動作します
	rootCmd.RunE = serveCmd.RunE
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	return rootCmd
}

// serve はサーバーを起動し、シグナルを受け取るまで待機します
func serve(ctx context.Context, cfg config.Config) error {
	r, closeRepo, err := openRepo(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	hub := realtime.NewHub()
	st, err := store.Open(ctx, r, hub)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	svc := service.New(st)

	router := httpx.NewRouter(
		handlers.NewAPIHandler(svc),
		handlers.NewWebSocketHandler(hub, cfg.WSSendBuffer),
		handlers.NewHealthHandler(svc, hub),
		httpx.RouterOptions{AllowedOrigins: cfg.AllowedOrigin, StaticDir: cfg.StaticDir},
	)

	srv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown用のシグナルチャネル
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	// サーバーを別goroutineで起動
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (driver=%s)", cfg.APIAddr, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// シャットダウンシグナルを待つ
	select {
	case <-sigChan:
		log.Println("shutdown signal received, shutting down gracefully...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	// 30秒のタイムアウトでGraceful Shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	log.Println("server stopped")
	return nil
}
