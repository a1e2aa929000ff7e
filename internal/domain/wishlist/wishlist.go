package wishlist

import (
	"context"
	"time"

	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// Entry 心愿单条目
// 按(user, book)唯一；重复收藏走upsert，只更新到货提醒开关
type Entry struct {
	ID                  uint
	UserID              uint
	BookID              uint
	NotifyWhenAvailable bool
	CreatedAt           time.Time
}

// ErrEntryNotFound 心愿单条目不存在
var ErrEntryNotFound = apperrors.New(apperrors.ErrCodeNotFound, "心愿单中没有该图书")

// Repository 心愿单仓储接口
type Repository interface {
	// Upsert 创建或更新条目（唯一键user_id+book_id）
	Upsert(ctx context.Context, e *Entry) error

	// ListByUser 返回用户的全部心愿单条目
	ListByUser(ctx context.Context, userID uint) ([]*Entry, error)

	// Delete 删除条目（幂等：不存在也不报错）
	Delete(ctx context.Context, userID, bookID uint) error
}
