package service

import (
	"errors"

	"github.com/Anu1650/team-mange-sam/internal/store"
)

// カスタムエラー定義
// 呼び出し側は errors.Is で判定します（例: "task not found" は ErrNotFound）
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrPersistence = store.ErrPersistence
)
