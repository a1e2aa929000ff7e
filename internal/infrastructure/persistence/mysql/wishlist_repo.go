package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/unibookshop/unibookshop/internal/domain/wishlist"
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// wishlistRepository 心愿单仓储的MySQL实现
type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓储
func NewWishlistRepository(db *gorm.DB) wishlist.Repository {
	return &wishlistRepository{db: db}
}

// Upsert 创建或更新条目
// 重复收藏只刷新notify_when_available开关，不产生第二行
func (r *wishlistRepository) Upsert(ctx context.Context, e *wishlist.Entry) error {
	model := &WishlistModel{
		UserID:              e.UserID,
		BookID:              e.BookID,
		NotifyWhenAvailable: e.NotifyWhenAvailable,
	}
	err := getDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"notify_when_available"}),
	}).Create(model).Error
	if err != nil {
		return apperrors.Wrap(err, "写入心愿单失败")
	}
	e.ID = model.ID
	e.CreatedAt = model.CreatedAt
	return nil
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID uint) ([]*wishlist.Entry, error) {
	var models []WishlistModel
	err := getDB(ctx, r.db).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询心愿单失败")
	}
	out := make([]*wishlist.Entry, 0, len(models))
	for i := range models {
		m := &models[i]
		out = append(out, &wishlist.Entry{
			ID:                  m.ID,
			UserID:              m.UserID,
			BookID:              m.BookID,
			NotifyWhenAvailable: m.NotifyWhenAvailable,
			CreatedAt:           m.CreatedAt,
		})
	}
	return out, nil
}

// Delete 删除条目（幂等：条目不存在也返回nil）
func (r *wishlistRepository) Delete(ctx context.Context, userID, bookID uint) error {
	err := getDB(ctx, r.db).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&WishlistModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "删除心愿单条目失败")
	}
	return nil
}
