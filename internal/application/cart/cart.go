package cart

import (
	"context"
	"errors"

	"github.com/unibookshop/unibookshop/internal/domain/book"
	"github.com/unibookshop/unibookshop/internal/domain/cart"
)

// CartUseCase 购物车用例
// 设计说明：
// 1. 购物车懒创建：首次访问时建空车，user_id唯一索引兜底并发
// 2. Add是合并语义（已有行项数量累加），Update是覆盖语义
// 3. 写入前校验目标数量<=当前库存；读取时不复查
//    （真正的库存裁决发生在下单事务里）
type CartUseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(cartRepo cart.Repository, bookRepo book.Repository) *CartUseCase {
	return &CartUseCase{cartRepo: cartRepo, bookRepo: bookRepo}
}

// Get 获取购物车（不存在则创建空车）
func (uc *CartUseCase) Get(ctx context.Context, userID uint) (*CartView, error) {
	c, err := uc.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.toView(ctx, c)
}

// AddItem 加入购物车（合并数量）
// quantity可以为负（减购）：合并后数量归零或为负时删行——
// 购物车里不存在quantity<=0的行
func (uc *CartUseCase) AddItem(ctx context.Context, userID, bookID uint, quantity int) (*CartView, error) {
	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	c, err := uc.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	newQty := quantity
	idx := c.FindItem(bookID)
	if idx >= 0 {
		newQty += c.Items[idx].Quantity
	}

	if newQty <= 0 {
		// 减到0以下等价于删行；行本来就不存在时是no-op
		if idx >= 0 {
			if err := uc.cartRepo.RemoveItem(ctx, c.ID, bookID); err != nil {
				return nil, err
			}
		}
		return uc.reload(ctx, userID)
	}

	if newQty > b.StockQuantity {
		return nil, book.ErrInsufficientStock
	}

	if err := uc.cartRepo.UpsertItem(ctx, c.ID, bookID, newQty); err != nil {
		return nil, err
	}
	return uc.reload(ctx, userID)
}

// UpdateItem 设置行项数量（覆盖语义；0删除行项）
func (uc *CartUseCase) UpdateItem(ctx context.Context, userID, bookID uint, quantity int) (*CartView, error) {
	if quantity < 0 {
		return nil, book.ErrInvalidQuantity
	}

	c, err := uc.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.FindItem(bookID) < 0 {
		return nil, cart.ErrItemNotFound
	}

	if quantity == 0 {
		if err := uc.cartRepo.RemoveItem(ctx, c.ID, bookID); err != nil {
			return nil, err
		}
		return uc.reload(ctx, userID)
	}

	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if quantity > b.StockQuantity {
		return nil, book.ErrInsufficientStock
	}

	if err := uc.cartRepo.UpsertItem(ctx, c.ID, bookID, quantity); err != nil {
		return nil, err
	}
	return uc.reload(ctx, userID)
}

// RemoveItem 删除行项
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, bookID uint) (*CartView, error) {
	c, err := uc.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.cartRepo.RemoveItem(ctx, c.ID, bookID); err != nil {
		return nil, err
	}
	return uc.reload(ctx, userID)
}

// Clear 清空购物车
func (uc *CartUseCase) Clear(ctx context.Context, userID uint) error {
	c, err := uc.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			// 没有车等价于已清空
			return nil
		}
		return err
	}
	return uc.cartRepo.Clear(ctx, c.ID)
}

// getOrCreate 懒创建购物车
// Create撞user_id唯一索引时（并发首次访问）安静返回，统一重查
func (uc *CartUseCase) getOrCreate(ctx context.Context, userID uint) (*cart.Cart, error) {
	c, err := uc.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, cart.ErrCartNotFound) {
		return nil, err
	}

	c = &cart.Cart{UserID: userID}
	if err := uc.cartRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return uc.cartRepo.FindByUserID(ctx, userID)
}

func (uc *CartUseCase) reload(ctx context.Context, userID uint) (*CartView, error) {
	c, err := uc.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.toView(ctx, c)
}

// toView 组装购物车视图（带图书摘要与按当前价的小计）
// 这里的金额只用于展示，下单时重新取价
func (uc *CartUseCase) toView(ctx context.Context, c *cart.Cart) (*CartView, error) {
	items := make([]ItemView, 0, len(c.Items))
	var total int64
	for _, it := range c.Items {
		iv := ItemView{BookID: it.BookID, Quantity: it.Quantity}
		if b, err := uc.bookRepo.FindByID(ctx, it.BookID); err == nil {
			iv.Title = b.Title
			iv.UnitPrice = b.Price
			iv.Subtotal = b.Price * int64(it.Quantity)
		}
		total += iv.Subtotal
		items = append(items, iv)
	}
	return &CartView{ID: c.ID, UserID: c.UserID, Items: items, Total: total}, nil
}

// =========================================
// 应用层DTO
// =========================================

// ItemView 购物车行项视图
type ItemView struct {
	BookID    uint   `json:"book_id"`
	Title     string `json:"title,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"` // 当前价（kobo）
	Subtotal  int64  `json:"subtotal"`
}

// CartView 购物车视图
type CartView struct {
	ID     uint       `json:"id"`
	UserID uint       `json:"user_id"`
	Items  []ItemView `json:"items"`
	Total  int64      `json:"total"` // 按当前价估算（kobo）
}
