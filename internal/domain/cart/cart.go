package cart

import (
	"context"
	"time"

	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// Cart 购物车实体（聚合根）
// 设计说明:
// 1. 每个用户恰好一辆购物车（user_id唯一索引），首次访问时懒创建
// 2. Item按(cart, book)唯一，数量恒>=1——数量归零即删行，
//    购物车里不存在quantity=0的残留行
type Cart struct {
	ID        uint
	UserID    uint
	Items     []Item
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item 购物车行项
type Item struct {
	ID       uint
	CartID   uint
	BookID   uint
	Quantity int
}

// FindItem 按图书查找行项，返回下标（不存在时-1）
func (c *Cart) FindItem(bookID uint) int {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			return i
		}
	}
	return -1
}

// 购物车领域错误定义
var (
	ErrCartNotFound = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在")
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeNotFound, "购物车中没有该图书")
)

// Repository 购物车仓储接口
type Repository interface {
	// FindByUserID 查找用户购物车（含行项）；不存在返回ErrCartNotFound
	FindByUserID(ctx context.Context, userID uint) (*Cart, error)

	// Create 创建空购物车
	Create(ctx context.Context, c *Cart) error

	// UpsertItem 新增或覆盖行项数量（按cart+book唯一键）
	UpsertItem(ctx context.Context, cartID, bookID uint, quantity int) error

	// RemoveItem 删除行项
	RemoveItem(ctx context.Context, cartID, bookID uint) error

	// Clear 清空购物车全部行项
	Clear(ctx context.Context, cartID uint) error
}
