package order

import (
	"time"

	"github.com/unibookshop/unibookshop/internal/domain/user"
)

// Status 订单履约状态
// 设计说明:
// 1. 使用字符串存储，与对外JSON及支付方回调语义一一对应
// 2. 履约状态与支付状态是两条独立轴：取消订单不代表退款，
//    支付成功也不代表已发货
type Status string

const (
	StatusPending    Status = "pending"    // 待确认
	StatusConfirmed  Status = "confirmed"  // 已确认（通常由支付回调触发）
	StatusProcessing Status = "processing" // 备货中
	StatusShipped    Status = "shipped"    // 已发出
	StatusDelivered  Status = "delivered"  // 已送达
	StatusCancelled  Status = "cancelled"  // 已取消
)

// IsValid 校验履约状态值
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing,
		StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus 支付状态
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// IsValid 校验支付状态值
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// DeliveryType 交付方式
type DeliveryType string

const (
	DeliveryPickup   DeliveryType = "pickup"   // 到店自提
	DeliveryDelivery DeliveryType = "delivery" // 配送上门
)

// IsValid 校验交付方式
func (t DeliveryType) IsValid() bool {
	return t == DeliveryPickup || t == DeliveryDelivery
}

// Order 订单实体（聚合根）
// 设计说明:
// 1. Item是聚合内子实体，只能通过Order访问
// 2. UnitPrice/Subtotal是下单时的价格快照——之后改价不影响历史订单
// 3. TotalAmount = Σ Subtotal + DeliveryFee，创建时计算一次，
//    状态流转不重算
type Order struct {
	ID               uint
	OrderNumber      string // 业务单号（UBS-xxxxxxxx-xxx），全局唯一
	UserID           uint
	Status           Status
	PaymentStatus    PaymentStatus
	PaymentMethod    string
	PaymentReference string // 支付方交易引用，Webhook按此定位订单
	DeliveryType     DeliveryType
	DeliveryAddress  *user.Address
	DeliveryFee      int64 // kobo
	TotalAmount      int64 // kobo
	Notes            string
	Items            []Item
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Item 订单行项
// UnitPrice为下单时单价快照（kobo），Subtotal = UnitPrice × Quantity
type Item struct {
	ID        uint
	OrderID   uint
	BookID    uint
	Quantity  int
	UnitPrice int64
	Subtotal  int64
}

// NewOrder 创建新订单（工厂方法）
// 初始状态pending/pending；TotalAmount由调用方根据行项与配送费累加
func NewOrder(orderNumber string, userID uint, items []Item, totalAmount int64) *Order {
	now := time.Now()
	return &Order{
		OrderNumber:   orderNumber,
		UserID:        userID,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		Items:         items,
		TotalAmount:   totalAmount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CalculateTotal 按行项+配送费重算总额
// 用于创建时自检，持久化后不再调用
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Subtotal
	}
	return total + o.DeliveryFee
}

// IsOwnedBy 检查订单归属
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}

// MarkPaid 支付成功：payment_status=paid且status=confirmed
// 幂等：目标状态已生效时重复调用是无副作用的no-op
func (o *Order) MarkPaid() bool {
	if o.PaymentStatus == PaymentPaid && o.Status == StatusConfirmed {
		return false
	}
	o.PaymentStatus = PaymentPaid
	o.Status = StatusConfirmed
	o.UpdatedAt = time.Now()
	return true
}
