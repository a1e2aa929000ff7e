package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/unibookshop/unibookshop/internal/domain/book"
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// bookRepository 图书仓储的MySQL实现
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
// 注意：不过滤is_active。下架的书详情页仍可访问（如历史订单回看），
// 上架状态的过滤只发生在List目录查询里。
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Preload("Courses").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Update 更新图书信息
// 库存列不在更新范围内：库存只能走DecrementStock/IncrementStock条件更新
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&BookModel{}).Where("id = ?", b.ID).
			Updates(map[string]interface{}{
				"title":               model.Title,
				"author":              model.Author,
				"isbn":                model.ISBN,
				"description":         model.Description,
				"cover_image_url":     model.CoverImageURL,
				"price":               model.Price,
				"low_stock_threshold": model.LowStockThreshold,
				"publisher":           model.Publisher,
				"publication_year":    model.PublicationYear,
				"edition":             model.Edition,
				"category":            model.Category,
				"is_ebook":            model.IsEbook,
				"ebook_url":           model.EbookURL,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}

		// 课程关联整体替换
		if err := tx.Where("book_id = ?", b.ID).Delete(&BookCourseModel{}).Error; err != nil {
			return err
		}
		if len(model.Courses) > 0 {
			for i := range model.Courses {
				model.Courses[i].BookID = b.ID
			}
			if err := tx.Create(&model.Courses).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return err
		}
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}
	return nil
}

// Deactivate 下架图书（软删除：is_active置false，数据保留）
func (r *bookRepository) Deactivate(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "下架图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 分页查询目录
// 只返回is_active=true的图书；关键词同时匹配书名和作者
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	db := getDB(ctx, r.db)

	query := db.Model(&BookModel{}).Where("is_active = ?", true)

	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR author LIKE ?", kw, kw)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.CourseID != 0 {
		query = query.Where("id IN (?)",
			db.Model(&BookCourseModel{}).Select("book_id").Where("course_id = ?", params.CourseID))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "统计图书数量失败")
	}

	var models []BookModel
	offset := (params.Page - 1) * params.PageSize
	err := query.Preload("Courses").
		Order("created_at DESC").
		Offset(offset).Limit(params.PageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, 0, len(models))
	for i := range models {
		books = append(books, toBookEntity(&models[i]))
	}
	return books, total, nil
}

// DecrementStock 条件原子扣减库存
// 设计说明：
// 1. 单条UPDATE带条件：stock_quantity - ? >= 0，由数据库保证不会超卖
// 2. RowsAffected==0说明库存不足（或图书不存在），返回领域错误
// 3. 并发下单同时扣同一本书时，行锁天然串行化，先到先得
func (r *bookRepository) DecrementStock(ctx context.Context, id uint, qty int) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND stock_quantity - ? >= 0", id, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "扣减库存失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrInsufficientStock
	}
	return nil
}

// IncrementStock 回补库存（取消订单时调用）
func (r *bookRepository) IncrementStock(ctx context.Context, id uint, qty int) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", qty))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "回补库存失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// toBookModel 领域实体 -> 存储模型
func toBookModel(b *book.Book) *BookModel {
	var isbn *string
	if b.ISBN != "" {
		s := b.ISBN
		isbn = &s
	}
	courses := make([]BookCourseModel, 0, len(b.Courses))
	for _, c := range b.Courses {
		courses = append(courses, BookCourseModel{
			BookID:     b.ID,
			CourseID:   c.CourseID,
			IsRequired: c.IsRequired,
		})
	}
	return &BookModel{
		ID:                b.ID,
		Title:             b.Title,
		Author:            b.Author,
		ISBN:              isbn,
		Description:       b.Description,
		CoverImageURL:     b.CoverImageURL,
		Price:             b.Price,
		StockQuantity:     b.StockQuantity,
		LowStockThreshold: b.LowStockThreshold,
		Publisher:         b.Publisher,
		PublicationYear:   b.PublicationYear,
		Edition:           b.Edition,
		Category:          b.Category,
		IsEbook:           b.IsEbook,
		EbookURL:          b.EbookURL,
		IsActive:          b.IsActive,
		Courses:           courses,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// toBookEntity 存储模型 -> 领域实体
func toBookEntity(m *BookModel) *book.Book {
	isbn := ""
	if m.ISBN != nil {
		isbn = *m.ISBN
	}
	courses := make([]book.CourseLink, 0, len(m.Courses))
	for _, c := range m.Courses {
		courses = append(courses, book.CourseLink{
			CourseID:   c.CourseID,
			IsRequired: c.IsRequired,
		})
	}
	return &book.Book{
		ID:                m.ID,
		Title:             m.Title,
		Author:            m.Author,
		ISBN:              isbn,
		Description:       m.Description,
		CoverImageURL:     m.CoverImageURL,
		Price:             m.Price,
		StockQuantity:     m.StockQuantity,
		LowStockThreshold: m.LowStockThreshold,
		Publisher:         m.Publisher,
		PublicationYear:   m.PublicationYear,
		Edition:           m.Edition,
		Category:          m.Category,
		IsEbook:           m.IsEbook,
		EbookURL:          m.EbookURL,
		IsActive:          m.IsActive,
		Courses:           courses,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
