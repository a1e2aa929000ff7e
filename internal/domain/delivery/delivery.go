package delivery

import (
	"context"
	"time"

	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// Status 配送状态
// 注意：状态之间没有强制的转移图，任何授权操作都可以直接设置任意值
// （与订单履约状态保持同样的宽松语义，收紧与否是待定的产品决策）
type Status string

const (
	StatusPending   Status = "pending"
	StatusAssigned  Status = "assigned"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

// IsValid 校验配送状态值
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInTransit, StatusDelivered, StatusFailed:
		return true
	}
	return false
}

// Delivery 配送单实体
// 设计说明:
// 1. 随delivery类型订单在下单时创建，之后由配送人员独立流转
// 2. 与订单事实上1:1，但以独立聚合存储（配送员不触碰订单）
// 3. 配送单从不删除
type Delivery struct {
	ID           uint
	OrderID      uint
	AgentID      *uint // 指派的配送员，未指派时为nil
	Status       Status
	PickupTime   *time.Time
	DeliveryTime *time.Time
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewDelivery 随订单创建配送单
func NewDelivery(orderID uint) *Delivery {
	now := time.Now()
	return &Delivery{
		OrderID:   orderID,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAssignedTo 配送单是否指派给某配送员
func (d *Delivery) IsAssignedTo(agentID uint) bool {
	return d.AgentID != nil && *d.AgentID == agentID
}

// Assign 指派配送员并置为assigned
func (d *Delivery) Assign(agentID uint) {
	d.AgentID = &agentID
	d.Status = StatusAssigned
	d.UpdatedAt = time.Now()
}

// 配送领域错误定义
var (
	ErrDeliveryNotFound = apperrors.New(apperrors.ErrCodeDeliveryNotFound, "配送单不存在")
	ErrInvalidStatus    = apperrors.New(apperrors.ErrCodeInvalidParams, "配送状态值不合法")
)

// Repository 配送单仓储接口
type Repository interface {
	// Create 创建配送单（下单事务内调用）
	Create(ctx context.Context, d *Delivery) error

	// FindByID 根据ID查找配送单
	FindByID(ctx context.Context, id uint) (*Delivery, error)

	// FindByOrderID 根据订单查找配送单
	FindByOrderID(ctx context.Context, orderID uint) (*Delivery, error)

	// List 返回全部配送单（按创建时间降序）
	List(ctx context.Context) ([]*Delivery, error)

	// ListByAgent 返回某配送员名下的配送单
	ListByAgent(ctx context.Context, agentID uint) ([]*Delivery, error)

	// Update 更新配送单（指派、状态、时间、备注）
	Update(ctx context.Context, d *Delivery) error
}
