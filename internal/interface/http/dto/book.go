package dto

// CourseLinkRequest 图书-课程关联
type CourseLinkRequest struct {
	CourseID   uint `json:"course_id" binding:"required"`
	IsRequired bool `json:"is_required"`
}

// BookRequest 图书写入请求（创建与更新共用）
type BookRequest struct {
	Title             string              `json:"title" binding:"required"`
	Author            string              `json:"author" binding:"required"`
	ISBN              string              `json:"isbn"`
	Description       string              `json:"description"`
	CoverImageURL     string              `json:"cover_image_url"`
	Price             int64               `json:"price" binding:"required,gt=0"` // kobo
	StockQuantity     int                 `json:"stock_quantity" binding:"gte=0"`
	LowStockThreshold int                 `json:"low_stock_threshold"`
	Publisher         string              `json:"publisher"`
	PublicationYear   int                 `json:"publication_year"`
	Edition           string              `json:"edition"`
	Category          string              `json:"category"`
	IsEbook           bool                `json:"is_ebook"`
	EbookURL          string              `json:"ebook_url"`
	Courses           []CourseLinkRequest `json:"courses"`
}

// ListBooksQuery 目录查询参数
type ListBooksQuery struct {
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
	Keyword  string `form:"keyword"`
	Category string `form:"category"`
	CourseID uint   `form:"course_id"`
}
