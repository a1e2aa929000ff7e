package book

import (
	"context"

	"github.com/unibookshop/unibookshop/internal/domain/book"
	"github.com/unibookshop/unibookshop/internal/infrastructure/persistence/redis"
)

// QueryBookUseCase 图书查询用例（公开接口）
// 详情走Redis旁路缓存；列表查询直查数据库（条件组合多，缓存命中率低）
type QueryBookUseCase struct {
	bookService book.Service
	cache       *redis.BookCache
}

// NewQueryBookUseCase 创建图书查询用例
func NewQueryBookUseCase(bookService book.Service, cache *redis.BookCache) *QueryBookUseCase {
	return &QueryBookUseCase{bookService: bookService, cache: cache}
}

// Get 图书详情
// 不过滤is_active：下架的书详情仍可直达（历史订单回看场景）
func (uc *QueryBookUseCase) Get(ctx context.Context, id uint) (*BookDetail, error) {
	if cached, ok := uc.cache.Get(ctx, id); ok {
		detail := toBookDetail(cached)
		return &detail, nil
	}

	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(ctx, b)

	detail := toBookDetail(b)
	return &detail, nil
}

// ListRequest 目录查询请求
type ListRequest struct {
	Page     int
	PageSize int
	Keyword  string // 匹配书名或作者
	Category string
	CourseID uint
}

// List 在售图书目录（只含is_active=true）
func (uc *QueryBookUseCase) List(ctx context.Context, req ListRequest) ([]BookDetail, int64, error) {
	books, total, err := uc.bookService.ListBooks(ctx, book.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		Category: req.Category,
		CourseID: req.CourseID,
	})
	if err != nil {
		return nil, 0, err
	}

	details := make([]BookDetail, 0, len(books))
	for _, b := range books {
		details = append(details, toBookDetail(b))
	}
	return details, total, nil
}

// =========================================
// 应用层DTO
// =========================================

// BookDetail 图书详情
type BookDetail struct {
	ID                uint            `json:"id"`
	Title             string          `json:"title"`
	Author            string          `json:"author"`
	ISBN              string          `json:"isbn,omitempty"`
	Description       string          `json:"description,omitempty"`
	CoverImageURL     string          `json:"cover_image_url,omitempty"`
	Price             int64           `json:"price"` // kobo
	StockQuantity     int             `json:"stock_quantity"`
	LowStock          bool            `json:"low_stock"`
	Publisher         string          `json:"publisher,omitempty"`
	PublicationYear   int             `json:"publication_year,omitempty"`
	Edition           string          `json:"edition,omitempty"`
	Category          string          `json:"category,omitempty"`
	IsEbook           bool            `json:"is_ebook"`
	EbookURL          string          `json:"ebook_url,omitempty"`
	IsActive          bool            `json:"is_active"`
	Courses           []CourseLinkDTO `json:"courses"`
	CreatedAt         string          `json:"created_at"`
}

func toBookDetail(b *book.Book) BookDetail {
	courses := make([]CourseLinkDTO, 0, len(b.Courses))
	for _, c := range b.Courses {
		courses = append(courses, CourseLinkDTO{CourseID: c.CourseID, IsRequired: c.IsRequired})
	}
	return BookDetail{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Description:     b.Description,
		CoverImageURL:   b.CoverImageURL,
		Price:           b.Price,
		StockQuantity:   b.StockQuantity,
		LowStock:        b.IsLowStock(),
		Publisher:       b.Publisher,
		PublicationYear: b.PublicationYear,
		Edition:         b.Edition,
		Category:        b.Category,
		IsEbook:         b.IsEbook,
		EbookURL:        b.EbookURL,
		IsActive:        b.IsActive,
		Courses:         courses,
		CreatedAt:       b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
