package realtime

import (
	"encoding/json"
	"log"
)

// SignalPayload は中継されるシグナリングメッセージのペイロード
// Payload の中身（offer / answer / ICE candidate など）は一切解釈しません
type SignalPayload struct {
	From    string          `json:"from"`    // 送信元の接続ID（Hubが付与）
	Payload json.RawMessage `json:"payload"` // ピア接続のネゴシエーションデータ
}

// Relay はfromからtoへシグナリングペイロードを転送します
// toが接続していない場合は黙って破棄します（エラーにもリトライにもしません）
func (h *Hub) Relay(from, to string, payload json.RawMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.conns[to]
	if !ok {
		log.Printf("Signal dropped, destination not connected: from=%s, to=%s", from, to)
		return
	}

	msg, err := encode(Message{Type: TypeSignal, Payload: SignalPayload{From: from, Payload: payload}})
	if err != nil {
		log.Printf("Failed to encode signal: from=%s, to=%s, error=%v", from, to, err)
		return
	}
	h.deliver(c, msg)
}
