package wishlist

import (
	"context"

	"github.com/unibookshop/unibookshop/internal/domain/book"
	"github.com/unibookshop/unibookshop/internal/domain/wishlist"
)

// WishlistUseCase 心愿单用例
// 重复收藏是upsert：只翻转到货提醒开关，不产生重复条目
type WishlistUseCase struct {
	wishlistRepo wishlist.Repository
	bookRepo     book.Repository
}

// NewWishlistUseCase 创建心愿单用例
func NewWishlistUseCase(wishlistRepo wishlist.Repository, bookRepo book.Repository) *WishlistUseCase {
	return &WishlistUseCase{wishlistRepo: wishlistRepo, bookRepo: bookRepo}
}

// Add 收藏图书（或更新提醒开关）
func (uc *WishlistUseCase) Add(ctx context.Context, userID, bookID uint, notify bool) (*EntryView, error) {
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	e := &wishlist.Entry{
		UserID:              userID,
		BookID:              bookID,
		NotifyWhenAvailable: notify,
	}
	if err := uc.wishlistRepo.Upsert(ctx, e); err != nil {
		return nil, err
	}

	view := toEntryView(e)
	return &view, nil
}

// List 我的心愿单（带图书摘要）
func (uc *WishlistUseCase) List(ctx context.Context, userID uint) ([]EntryView, error) {
	entries, err := uc.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		view := toEntryView(e)
		if b, err := uc.bookRepo.FindByID(ctx, e.BookID); err == nil {
			view.Title = b.Title
			view.Price = b.Price
			view.InStock = b.StockQuantity > 0
		}
		out = append(out, view)
	}
	return out, nil
}

// Remove 取消收藏（幂等）
func (uc *WishlistUseCase) Remove(ctx context.Context, userID, bookID uint) error {
	return uc.wishlistRepo.Delete(ctx, userID, bookID)
}

// EntryView 心愿单条目视图
type EntryView struct {
	ID                  uint   `json:"id"`
	BookID              uint   `json:"book_id"`
	Title               string `json:"title,omitempty"`
	Price               int64  `json:"price,omitempty"` // kobo
	InStock             bool   `json:"in_stock"`
	NotifyWhenAvailable bool   `json:"notify_when_available"`
}

func toEntryView(e *wishlist.Entry) EntryView {
	return EntryView{
		ID:                  e.ID,
		BookID:              e.BookID,
		NotifyWhenAvailable: e.NotifyWhenAvailable,
	}
}
