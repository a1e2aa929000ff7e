package order

import (
	"context"
)

// Repository 订单仓储接口
// 订单与明细是聚合关系，创建与读取都以整体为单位；
// 事务通过context传递（infrastructure层的TxManager注入）
type Repository interface {
	// Create 创建订单（含全部行项）
	// 订单号撞唯一索引时返回ErrOrderNumberDuplicate
	Create(ctx context.Context, o *Order) error

	// FindByID 根据ID查找订单（含行项）
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByPaymentReference 按支付方交易引用查找订单（Webhook对账入口）
	FindByPaymentReference(ctx context.Context, reference string) (*Order, error)

	// UpdateStatus 更新履约/支付状态字段
	// 只写状态相关列，不触碰金额与行项（订单创建后即不可变）
	UpdateStatus(ctx context.Context, o *Order) error

	// List 返回全部订单（按创建时间降序，staff视图）
	List(ctx context.Context) ([]*Order, error)

	// ListByUserID 返回某用户的订单（按创建时间降序）
	ListByUserID(ctx context.Context, userID uint) ([]*Order, error)
}
