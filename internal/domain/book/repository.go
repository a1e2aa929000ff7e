package book

import (
	"context"
)

// Repository 图书仓储接口（依赖倒置原则）
// 由domain层定义接口，infrastructure层实现，便于Mock测试
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	// 注意：不过滤IsActive——已下架图书仍可通过主键命中
	//（下单路径依赖该行为，目录列表才做IsActive过滤）
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书信息（全量保存）
	Update(ctx context.Context, book *Book) error

	// Deactivate 软删除：置IsActive=false，记录保留
	Deactivate(ctx context.Context, id uint) error

	// List 查询在售图书列表（仅IsActive=true），支持关键词/分类过滤与分页
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// DecrementStock 条件原子扣减库存
	// 语义：UPDATE books SET stock_quantity = stock_quantity - qty
	//       WHERE id = ? AND stock_quantity - qty >= 0
	// 影响0行且图书存在时返回ErrInsufficientStock。
	// 校验与扣减合并为单条语句，并发下库存不会被扣成负数。
	DecrementStock(ctx context.Context, id uint, qty int) error

	// IncrementStock 原子回补库存（订单取消时调用）
	IncrementStock(ctx context.Context, id uint, qty int) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码（从1开始）
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词（标题/作者/出版社）
	Category string // 分类过滤
	CourseID uint   // 按课程过滤（课程指定书目）
}
