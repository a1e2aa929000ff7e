package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/unibookshop/unibookshop/internal/domain/cart"
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// cartRepository 购物车仓储的MySQL实现
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	var model CartModel
	err := getDB(ctx, r.db).Preload("Items").Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

func (r *cartRepository) Create(ctx context.Context, c *cart.Cart) error {
	model := &CartModel{UserID: c.UserID}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		// user_id唯一索引：并发首次访问时可能撞车，由调用方重查
		if isDuplicateError(err) {
			return nil
		}
		return apperrors.Wrap(err, "创建购物车失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// UpsertItem 新增或覆盖行项数量
// ON DUPLICATE KEY UPDATE quantity=VALUES(quantity)：
// 合并语义由应用层决定（新数量是覆盖值），仓储只负责落库
func (r *cartRepository) UpsertItem(ctx context.Context, cartID, bookID uint, quantity int) error {
	item := &CartItemModel{CartID: cartID, BookID: bookID, Quantity: quantity}
	err := getDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
	}).Create(item).Error
	if err != nil {
		return apperrors.Wrap(err, "写入购物车行项失败")
	}
	return nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, bookID uint) error {
	result := getDB(ctx, r.db).
		Where("cart_id = ? AND book_id = ?", cartID, bookID).
		Delete(&CartItemModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车行项失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, cartID uint) error {
	err := getDB(ctx, r.db).Where("cart_id = ?", cartID).Delete(&CartItemModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

func toCartEntity(m *CartModel) *cart.Cart {
	items := make([]cart.Item, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, cart.Item{
			ID:       it.ID,
			CartID:   it.CartID,
			BookID:   it.BookID,
			Quantity: it.Quantity,
		})
	}
	return &cart.Cart{
		ID:        m.ID,
		UserID:    m.UserID,
		Items:     items,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
