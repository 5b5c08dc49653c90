package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Anu1650/team-mange-sam/internal/idgen"
	"github.com/Anu1650/team-mange-sam/internal/realtime"
)

const (
	writeWait      = 10 * time.Second    // 1メッセージの書き込み期限
	pongWait       = 60 * time.Second    // pongを待つ期限（超えたら切断）
	pingPeriod     = (pongWait * 9) / 10 // pingの送信間隔
	maxMessageSize = 64 << 10            // 受信メッセージの上限（SDPを含むため大きめ）
)

// 受信メッセージのタイプ
const (
	msgJoinRoom  = "join-room"
	msgLeaveRoom = "leave-room"
	msgSignal    = "signal"
	msgPing      = "ping"
)

// inboundMessage はクライアントから受信するメッセージ
// Payload はタイプごとに後からデコードします
type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RoomPayload は join-room / leave-room のペイロード
type RoomPayload struct {
	RoomID string `json:"roomId"`
}

// SignalRequest はシグナリング中継のリクエスト
type SignalRequest struct {
	To      string          `json:"to"`      // 宛先の接続ID
	Payload json.RawMessage `json:"payload"` // 中継するデータ（解釈しません）
	Signal  json.RawMessage `json:"signal,omitempty"`
}

// wsClient は1つのWebSocket接続を表します
// Hubからの送信は送信キューに積まれ、writePumpが順番に書き込みます
type wsClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	closeOnce sync.Once
}

var _ realtime.Conn = (*wsClient)(nil)

func newWSClient(id string, conn *websocket.Conn, buffer int) *wsClient {
	return &wsClient{
		id:   id,
		conn: conn,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

func (c *wsClient) ID() string { return c.id }

// Send は送信キューに積みます。ブロックせず、満杯ならfalseを返します
// 切断済みの接続への送信は黙って捨てます
func (c *wsClient) Send(msg []byte) bool {
	select {
	case <-c.done:
		return true
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Close は接続を閉じます。読み込みループが終了し、切断処理に進みます
func (c *wsClient) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// writePump は送信キューの内容とpingを書き込みます
// 接続ごとに1つだけ起動するため、同じ接続への書き込みは常に直列です
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("WebSocket write error (connId=%s): %v", c.id, err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// WebSocketHandler はWebSocket接続を処理するハンドラー
type WebSocketHandler struct {
	hub        *realtime.Hub      // 接続とルームを管理するハブ
	upgrader   websocket.Upgrader // HTTPからWebSocketへのアップグレーダー
	sendBuffer int                // 接続ごとの送信キューの長さ
}

// NewWebSocketHandler は新しいWebSocketHandlerを作成します
func NewWebSocketHandler(hub *realtime.Hub, sendBuffer int) *WebSocketHandler {
	if sendBuffer <= 0 {
		sendBuffer = 64
	}
	return &WebSocketHandler{
		hub:        hub,
		sendBuffer: sendBuffer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// 本番環境では適切なOriginチェックを実装してください
				return true
			},
		},
	}
}

// HandleWebSocket はWebSocket接続を処理します
// 接続後、以下の処理を行います:
// 1. HTTPからWebSocketへのアップグレード
// 2. 接続IDを割り当ててHubに登録（hello で本人に通知）
// 3. メッセージ受信ループの開始
// 4. 切断時にすべてのルームから退出させ、登録を解除
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := newWSClient(idgen.NewULID(), conn, h.sendBuffer)
	go client.writePump()
	h.hub.Register(client)
	defer func() {
		h.hub.Unregister(client.id)
		client.Close()
		log.Printf("WebSocket disconnected: connId=%s", client.id)
	}()

	log.Printf("WebSocket connected: connId=%s", client.id)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// メッセージ受信ループ
	for {
		// フレームの受信とJSONのデコードを分け、デコードできないメッセージでは切断しません
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error (connId=%s): %v", client.id, err)
			}
			return
		}
		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendError(client.id, "invalid JSON message")
			continue
		}
		h.dispatch(client.id, msg)
	}
}

// dispatch はメッセージタイプに応じて処理します
func (h *WebSocketHandler) dispatch(connID string, msg inboundMessage) {
	switch msg.Type {
	case msgJoinRoom:
		roomID, err := parseRoomID(msg.Payload)
		if err != nil {
			h.sendError(connID, err.Error())
			return
		}
		h.hub.Join(roomID, connID)
	case msgLeaveRoom:
		roomID, err := parseRoomID(msg.Payload)
		if err != nil {
			h.sendError(connID, err.Error())
			return
		}
		h.hub.Leave(roomID, connID)
	case msgSignal:
		var req SignalRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			log.Printf("Failed to unmarshal signal payload (connId=%s): %v", connID, err)
			h.sendError(connID, "invalid signal payload")
			return
		}
		if err := validateID("to", req.To); err != nil {
			h.sendError(connID, err.Error())
			return
		}
		payload := req.Payload
		if len(payload) == 0 {
			payload = req.Signal
		}
		h.hub.Relay(connID, normalizeID(req.To), payload)
	case msgPing:
		// ping/pongで接続を維持
		h.hub.SendTo(connID, realtime.Message{Type: realtime.TypePong})
	default:
		log.Printf("Unknown message type: %s", msg.Type)
		h.sendError(connID, "unknown message type: "+msg.Type)
	}
}

func (h *WebSocketHandler) sendError(connID, message string) {
	h.hub.SendTo(connID, realtime.Message{
		Type:    realtime.TypeError,
		Payload: map[string]string{"message": message},
	})
}

// parseRoomID は {"roomId": "..."} と文字列そのものの両方を受け付けます
func parseRoomID(raw json.RawMessage) (string, error) {
	var roomID string
	if err := json.Unmarshal(raw, &roomID); err != nil {
		var p RoomPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return "", errors.New("invalid room payload")
		}
		roomID = p.RoomID
	}
	roomID = normalizeID(roomID)
	if err := validateRoomId(roomID); err != nil {
		return "", err
	}
	return roomID, nil
}
