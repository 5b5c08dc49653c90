package realtime

import (
	"log"
	"slices"
)

// room は1つのミーティングルームの参加者（接続ID）を保持します
// 参加順を保つためスライスで管理します
type room struct {
	id      string
	members []string
}

// MembershipPayload はルーム参加者一覧の通知ペイロード
type MembershipPayload struct {
	RoomID  string   `json:"roomId"`  // ルームID（ミーティングID）
	Members []string `json:"members"` // 参加中の接続ID一覧（参加順）
}

// Join は接続をルームに追加します
// ルームが存在しない場合は新規作成し、参加者全員（本人を含む）に最新の参加者一覧を送信します
// 同じ接続が2回参加しても参加者は1人のままです
func (h *Hub) Join(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, exists := h.rooms[roomID]
	if !exists {
		r = &room{id: roomID}
		h.rooms[roomID] = r
	}
	if !slices.Contains(r.members, connID) {
		r.members = append(r.members, connID)
	}

	log.Printf("Connection joined room: roomId=%s, connId=%s, members=%d", roomID, connID, len(r.members))
	h.broadcastMembershipLocked(r)
}

// Leave は接続をルームから外し、残りの参加者に最新の参加者一覧を送信します
// 退出した本人には送信しません。未知のルームの場合は何もしません
func (h *Hub) Leave(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, exists := h.rooms[roomID]
	if !exists {
		return
	}
	r.members = slices.DeleteFunc(r.members, func(id string) bool { return id == connID })

	log.Printf("Connection left room: roomId=%s, connId=%s, members=%d", roomID, connID, len(r.members))
	h.broadcastMembershipLocked(r)
	h.reapLocked(r)
}

// Disconnect は接続をすべてのルームから外します
// 外れたルームごとに1回だけ、残りの参加者へ参加者一覧を送信します
func (h *Hub) Disconnect(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disconnectLocked(connID)
}

// roomMembers はルームの参加者一覧を返します
func (h *Hub) roomMembers(roomID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	r, ok := h.rooms[roomID]
	if !ok {
		return nil
	}
	return slices.Clone(r.members)
}

// RoomCount は参加者のいるルーム数を返します
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

func (h *Hub) disconnectLocked(connID string) {
	for _, r := range h.rooms {
		idx := slices.Index(r.members, connID)
		if idx < 0 {
			continue
		}
		r.members = slices.Delete(r.members, idx, idx+1)
		log.Printf("Connection removed from room on disconnect: roomId=%s, connId=%s", r.id, connID)
		h.broadcastMembershipLocked(r)
		h.reapLocked(r)
	}
}

// reapLocked は空になったルームを削除します
func (h *Hub) reapLocked(r *room) {
	if len(r.members) == 0 {
		delete(h.rooms, r.id)
	}
}

func (h *Hub) broadcastMembershipLocked(r *room) {
	if len(r.members) == 0 {
		return
	}
	msg, err := encode(Message{
		Type:    TypeRoomMembership,
		Payload: MembershipPayload{RoomID: r.id, Members: slices.Clone(r.members)},
	})
	if err != nil {
		log.Printf("Failed to encode membership (roomId=%s): %v", r.id, err)
		return
	}
	for _, id := range r.members {
		if c, ok := h.conns[id]; ok {
			h.deliver(c, msg)
		}
	}
}
