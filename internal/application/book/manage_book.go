package book

import (
	"context"

	"github.com/unibookshop/unibookshop/internal/domain/book"
	"github.com/unibookshop/unibookshop/internal/infrastructure/persistence/redis"
)

// ManageBookUseCase 图书管理用例（上架/更新/下架）
// 角色门槛在接口层：create/update需admin或inventory_manager，下架仅admin
type ManageBookUseCase struct {
	bookService book.Service
	cache       *redis.BookCache
}

// NewManageBookUseCase 创建图书管理用例
func NewManageBookUseCase(bookService book.Service, cache *redis.BookCache) *ManageBookUseCase {
	return &ManageBookUseCase{bookService: bookService, cache: cache}
}

// CourseLinkDTO 图书-课程关联
type CourseLinkDTO struct {
	CourseID   uint `json:"course_id"`
	IsRequired bool `json:"is_required"`
}

// BookInput 图书写入字段（创建与更新共用）
type BookInput struct {
	Title             string
	Author            string
	ISBN              string
	Description       string
	CoverImageURL     string
	Price             int64 // kobo
	StockQuantity     int
	LowStockThreshold int
	Publisher         string
	PublicationYear   int
	Edition           string
	Category          string
	IsEbook           bool
	EbookURL          string
	Courses           []CourseLinkDTO
}

// Create 上架新书
func (uc *ManageBookUseCase) Create(ctx context.Context, in BookInput) (*BookDetail, error) {
	b := book.NewBook(in.Title, in.Author, in.ISBN, in.Price, in.StockQuantity)
	applyInput(b, in)

	created, err := uc.bookService.CreateBook(ctx, b)
	if err != nil {
		return nil, err
	}
	detail := toBookDetail(created)
	return &detail, nil
}

// Update 更新图书信息（库存不在此路径，见订单/后台库存操作）
func (uc *ManageBookUseCase) Update(ctx context.Context, id uint, in BookInput) (*BookDetail, error) {
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	applyInput(b, in)
	b.Title = in.Title
	b.Author = in.Author
	b.Price = in.Price

	if err := uc.bookService.UpdateBook(ctx, b); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, id)

	detail := toBookDetail(b)
	return &detail, nil
}

// Deactivate 下架图书（软删除，历史订单与详情查询不受影响）
func (uc *ManageBookUseCase) Deactivate(ctx context.Context, id uint) error {
	if err := uc.bookService.DeactivateBook(ctx, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, id)
	return nil
}

func applyInput(b *book.Book, in BookInput) {
	b.ISBN = in.ISBN
	b.Description = in.Description
	b.CoverImageURL = in.CoverImageURL
	b.Publisher = in.Publisher
	b.PublicationYear = in.PublicationYear
	b.Edition = in.Edition
	b.Category = in.Category
	b.IsEbook = in.IsEbook
	b.EbookURL = in.EbookURL
	if in.LowStockThreshold > 0 {
		b.LowStockThreshold = in.LowStockThreshold
	}
	links := make([]book.CourseLink, 0, len(in.Courses))
	for _, c := range in.Courses {
		links = append(links, book.CourseLink{CourseID: c.CourseID, IsRequired: c.IsRequired})
	}
	b.Courses = links
}
