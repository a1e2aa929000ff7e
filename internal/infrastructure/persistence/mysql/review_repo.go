package mysql

import (
	"context"
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/unibookshop/unibookshop/internal/domain/review"
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// reviewRepository 书评仓储的MySQL实现
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建书评仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Upsert 创建或覆盖书评
// 唯一键(user_id, book_id)：重复提交覆盖评分与评论，updated_at自动刷新
func (r *reviewRepository) Upsert(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		UserID:  rv.UserID,
		BookID:  rv.BookID,
		Rating:  rv.Rating,
		Comment: rv.Comment,
	}
	err := getDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return apperrors.Wrap(err, "写入书评失败")
	}
	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	rv.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint) ([]*review.Review, error) {
	var models []ReviewModel
	err := getDB(ctx, r.db).Where("book_id = ?", bookID).
		Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询书评失败")
	}
	out := make([]*review.Review, 0, len(models))
	for i := range models {
		m := &models[i]
		out = append(out, &review.Review{
			ID:        m.ID,
			UserID:    m.UserID,
			BookID:    m.BookID,
			Rating:    m.Rating,
			Comment:   m.Comment,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return out, nil
}

// SummaryByBook 计算书评数与平均分（平均分四舍五入到1位小数）
func (r *reviewRepository) SummaryByBook(ctx context.Context, bookID uint) (*review.Summary, error) {
	var row struct {
		Count int64
		Avg   float64
	}
	err := getDB(ctx, r.db).Model(&ReviewModel{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Where("book_id = ?", bookID).
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计书评失败")
	}
	return &review.Summary{
		Count:   row.Count,
		Average: math.Round(row.Avg*10) / 10,
	}, nil
}
