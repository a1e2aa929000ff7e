package review

import (
	"context"
	"time"

	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// Review 书评实体
// 设计说明:
// 1. 按(user, book)唯一：同一用户对同一本书只有一条书评
// 2. 重复提交是upsert——覆盖评分与评论并刷新UpdatedAt，不产生第二行
type Review struct {
	ID        uint
	UserID    uint
	BookID    uint
	Rating    int // 1-5
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary 某本书的书评汇总
type Summary struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"` // 四舍五入到1位小数，无书评时为0
}

// ErrInvalidRating 评分超出范围
var ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在1-5之间")

// ValidateRating 评分范围校验
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// Repository 书评仓储接口
type Repository interface {
	// Upsert 创建或覆盖书评（唯一键user_id+book_id）
	Upsert(ctx context.Context, r *Review) error

	// ListByBook 返回某本书的全部书评（按创建时间降序）
	ListByBook(ctx context.Context, bookID uint) ([]*Review, error)

	// SummaryByBook 计算某本书的书评数与平均分
	SummaryByBook(ctx context.Context, bookID uint) (*Summary, error)
}
