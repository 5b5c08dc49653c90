// Package realtime は接続中のクライアントへのリアルタイム配信を担当します
// コレクションのスナップショット配信、ミーティングルームの参加者管理、
// ピア接続用シグナリングの中継を1つのHubで提供します
package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// 送信メッセージのタイプ
const (
	TypeHello          = "hello"
	TypeRoomMembership = "room-membership"
	TypeSignal         = "signal"
	TypePong           = "pong"
	TypeError          = "error"
)

// Message はWebSocketで送受信するメッセージの構造
// すべてのメッセージはこの形式でやり取りされます
type Message struct {
	Type    string `json:"type"`    // メッセージタイプ (例: "tasks-updated", "room-membership", "signal")
	Payload any    `json:"payload"` // メッセージのペイロード（型は動的）
}

// Conn はHubから見た1つのクライアント接続です
// トランスポート（WebSocketなど）の実装はこのインターフェースの裏側に隠れます
type Conn interface {
	// ID はサーバーが割り当てた接続IDを返します
	ID() string
	// Send はエンコード済みメッセージを送信キューに積みます。ブロックしてはいけません
	// キューが満杯の場合は false を返します
	Send(msg []byte) bool
	// Close は接続を閉じます。複数回呼ばれても安全である必要があります
	Close()
}

// Hub は接続中のクライアントとミーティングルームを管理します
// スレッドセーフな実装により、複数のgoroutineから同時にアクセス可能です
type Hub struct {
	mu    sync.RWMutex
	conns map[string]Conn  // 接続IDをキーとした接続のマップ
	rooms map[string]*room // ルームIDをキーとしたルームのマップ
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]Conn),
		rooms: make(map[string]*room),
	}
}

// Register は新しい接続を登録し、接続IDを通知します
func (h *Hub) Register(c Conn) {
	msg, err := encode(Message{Type: TypeHello, Payload: map[string]string{"id": c.ID()}})
	if err != nil {
		log.Printf("Failed to encode hello: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.ID()] = c
	h.deliver(c, msg)
}

// Unregister は切断された接続を解除します
// 所属していたすべてのルームから外し、残りの参加者に更新を通知します
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disconnectLocked(connID)
	delete(h.conns, connID)
}

// Publish はtopicのスナップショットを接続中の全クライアントに送信します
// 差分ではなく常にコレクション全体を送ります。配信はベストエフォートで、確認応答はありません
func (h *Hub) Publish(topic string, snapshot any) {
	msg, err := encode(Message{Type: topic, Payload: snapshot})
	if err != nil {
		log.Printf("Failed to encode snapshot (topic=%s): %v", topic, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.conns {
		h.deliver(c, msg)
	}
}

// ConnectionCount は接続中のクライアント数を返します
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// SendTo は1つの接続にメッセージを送信します。接続が存在しない場合は何もしません
func (h *Hub) SendTo(connID string, m Message) {
	msg, err := encode(m)
	if err != nil {
		log.Printf("Failed to encode message (type=%s): %v", m.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.conns[connID]; ok {
		h.deliver(c, msg)
	}
}

// deliver は送信キューに積みます
// キューが満杯のクライアントは切断し、再接続で最新状態を取り直させます
func (h *Hub) deliver(c Conn, msg []byte) {
	if !c.Send(msg) {
		log.Printf("Send queue full, closing connection: connId=%s", c.ID())
		c.Close()
	}
}

func encode(m Message) ([]byte, error) {
	return json.Marshal(m)
}
