package handlers

import "fmt"

// validateID はパスパラメータのIDのバリデーションを行います
// IDが空の場合はエラーを返します
func validateID(name, id string) error {
	if normalizeID(id) == "" {
		return fmt.Errorf("%s required", name)
	}
	return nil
}

// validateRoomId はルームIDのバリデーションを行います
// ルームIDが空の場合はエラーを返します
func validateRoomId(roomId string) error {
	return validateID("roomId", roomId)
}
