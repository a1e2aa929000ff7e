package book

import (
	"time"
)

// Book 图书实体（聚合根）
// 设计说明:
// 1. 价格使用int64存储，单位kobo（1奈拉=100 kobo），避免浮点精度问题
// 2. ISBN可选，存在时全局唯一（数据库sparse唯一索引）
// 3. IsActive为软删除标记：下架的图书仍保留记录，目录接口不再展示
// 4. CourseLink关联课程，标记是否为课程必读书目
type Book struct {
	ID                uint
	Title             string
	Author            string
	ISBN              string
	Description       string
	CoverImageURL     string
	Price             int64 // 价格（kobo）
	StockQuantity     int   // 库存数量
	LowStockThreshold int   // 低库存预警阈值
	Publisher         string
	PublicationYear   int
	Edition           string
	Category          string
	IsEbook           bool
	EbookURL          string
	IsActive          bool
	Courses           []CourseLink
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CourseLink 图书-课程关联（值对象）
type CourseLink struct {
	CourseID   uint `json:"course_id"`
	IsRequired bool `json:"is_required"`
}

// NewBook 创建新图书（工厂方法）
// 调用方需先完成价格/库存等业务校验
func NewBook(title, author, isbn string, price int64, stock int) *Book {
	now := time.Now()
	return &Book{
		Title:             title,
		Author:            author,
		ISBN:              isbn,
		Price:             price,
		StockQuantity:     stock,
		LowStockThreshold: 10,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// IsLowStock 是否触达低库存阈值
func (b *Book) IsLowStock() bool {
	return b.StockQuantity <= b.LowStockThreshold
}

// Deactivate 下架（软删除）
func (b *Book) Deactivate() {
	b.IsActive = false
	b.UpdatedAt = time.Now()
}
