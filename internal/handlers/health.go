package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/Anu1650/team-mange-sam/internal/realtime"
	"github.com/Anu1650/team-mange-sam/internal/service"
)

// HealthHandler はサーバーの稼働状況を返します
type HealthHandler struct {
	svc *service.Service
	hub *realtime.Hub
}

func NewHealthHandler(svc *service.Service, hub *realtime.Hub) *HealthHandler {
	return &HealthHandler{svc: svc, hub: hub}
}

// healthResponse はヘルスチェックのレスポンス
type healthResponse struct {
	Status      string `json:"status"`                // ok / degraded
	Connections int    `json:"connections"`           // 接続中のWebSocketクライアント数
	Rooms       int    `json:"rooms"`                 // 参加者のいるルーム数
	LastSavedAt string `json:"lastSavedAt,omitempty"` // 最後にデータセットを保存した時刻
}

// Healthz は接続数・ルーム数と最終保存時刻を返します
// 保存先に問い合わせできない場合は 503 を返します
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:      "ok",
		Connections: h.hub.ConnectionCount(),
		Rooms:       h.hub.RoomCount(),
	}

	savedAt, err := h.svc.LastSavedAt(r.Context())
	if err != nil {
		log.Printf("Health check error: %v", err)
		resp.Status = "degraded"
		respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	if !savedAt.IsZero() {
		resp.LastSavedAt = savedAt.UTC().Format(time.RFC3339Nano)
	}
	respondJSON(w, http.StatusOK, resp)
}
