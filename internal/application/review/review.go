package review

import (
	"context"

	"github.com/unibookshop/unibookshop/internal/domain/book"
	"github.com/unibookshop/unibookshop/internal/domain/review"
)

// ReviewUseCase 书评用例
// 同一用户对同一本书只有一条书评，重复提交覆盖之前的评分与评论
type ReviewUseCase struct {
	reviewRepo review.Repository
	bookRepo   book.Repository
}

// NewReviewUseCase 创建书评用例
func NewReviewUseCase(reviewRepo review.Repository, bookRepo book.Repository) *ReviewUseCase {
	return &ReviewUseCase{reviewRepo: reviewRepo, bookRepo: bookRepo}
}

// Submit 提交书评（创建或覆盖）
func (uc *ReviewUseCase) Submit(ctx context.Context, userID, bookID uint, rating int, comment string) (*ReviewView, error) {
	if err := review.ValidateRating(rating); err != nil {
		return nil, err
	}
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	r := &review.Review{
		UserID:  userID,
		BookID:  bookID,
		Rating:  rating,
		Comment: comment,
	}
	if err := uc.reviewRepo.Upsert(ctx, r); err != nil {
		return nil, err
	}

	view := toReviewView(r)
	return &view, nil
}

// ListByBook 某本书的书评列表 + 汇总
func (uc *ReviewUseCase) ListByBook(ctx context.Context, bookID uint) (*BookReviews, error) {
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	reviews, err := uc.reviewRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	summary, err := uc.reviewRepo.SummaryByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	views := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, toReviewView(r))
	}
	return &BookReviews{Reviews: views, Summary: *summary}, nil
}

// =========================================
// 应用层DTO
// =========================================

// ReviewView 书评
type ReviewView struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	BookID    uint   `json:"book_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// BookReviews 书评列表 + 汇总
type BookReviews struct {
	Reviews []ReviewView   `json:"reviews"`
	Summary review.Summary `json:"summary"`
}

func toReviewView(r *review.Review) ReviewView {
	return ReviewView{
		ID:        r.ID,
		UserID:    r.UserID,
		BookID:    r.BookID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
