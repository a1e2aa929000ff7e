package order

import (
	"context"

	"github.com/unibookshop/unibookshop/internal/domain/delivery"
	"github.com/unibookshop/unibookshop/internal/domain/order"
	"github.com/unibookshop/unibookshop/internal/domain/user"
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// QueryOrderUseCase 订单查询用例
// 访问规则：
// 1. List（全量）：admin/cashier，在接口层拦截
// 2. ListMine：任何登录用户查自己的订单
// 3. Get：订单本人、admin/cashier，或被指派到该订单配送单的delivery_agent
type QueryOrderUseCase struct {
	orderRepo    order.Repository
	deliveryRepo delivery.Repository
}

// NewQueryOrderUseCase 创建订单查询用例
func NewQueryOrderUseCase(orderRepo order.Repository, deliveryRepo delivery.Repository) *QueryOrderUseCase {
	return &QueryOrderUseCase{orderRepo: orderRepo, deliveryRepo: deliveryRepo}
}

// List 全部订单（staff视图）
func (uc *QueryOrderUseCase) List(ctx context.Context) ([]OrderView, error) {
	orders, err := uc.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderViews(orders), nil
}

// ListMine 我的订单
func (uc *QueryOrderUseCase) ListMine(ctx context.Context, userID uint) ([]OrderView, error) {
	orders, err := uc.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toOrderViews(orders), nil
}

// Get 订单详情（带访问控制）
func (uc *QueryOrderUseCase) Get(ctx context.Context, orderID, requesterID uint, role user.Role) (*OrderView, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !uc.canRead(ctx, o, requesterID, role) {
		return nil, apperrors.ErrForbidden
	}

	view := toOrderView(o)
	return &view, nil
}

// canRead 订单读权限
func (uc *QueryOrderUseCase) canRead(ctx context.Context, o *order.Order, requesterID uint, role user.Role) bool {
	if o.IsOwnedBy(requesterID) {
		return true
	}
	switch role {
	case user.RoleAdmin, user.RoleCashier:
		return true
	case user.RoleDeliveryAgent:
		// 只有被指派到该订单配送单的配送员可见
		d, err := uc.deliveryRepo.FindByOrderID(ctx, o.ID)
		if err != nil {
			return false
		}
		return d.IsAssignedTo(requesterID)
	}
	return false
}

// =========================================
// 应用层DTO
// =========================================

// ItemView 订单行项视图（价格为下单时快照）
type ItemView struct {
	BookID    uint  `json:"book_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"` // kobo
	Subtotal  int64 `json:"subtotal"`   // kobo
}

// OrderView 订单视图
type OrderView struct {
	ID               uint          `json:"id"`
	OrderNumber      string        `json:"order_number"`
	UserID           uint          `json:"user_id"`
	Status           string        `json:"status"`
	PaymentStatus    string        `json:"payment_status"`
	PaymentMethod    string        `json:"payment_method,omitempty"`
	PaymentReference string        `json:"payment_reference,omitempty"`
	DeliveryType     string        `json:"delivery_type"`
	DeliveryAddress  *user.Address `json:"delivery_address,omitempty"`
	DeliveryFee      int64         `json:"delivery_fee"` // kobo
	TotalAmount      int64         `json:"total_amount"` // kobo
	Notes            string        `json:"notes,omitempty"`
	Items            []ItemView    `json:"items"`
	CreatedAt        string        `json:"created_at"`
}

func toOrderView(o *order.Order) OrderView {
	items := make([]ItemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemView{
			BookID:    it.BookID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return OrderView{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		UserID:           o.UserID,
		Status:           string(o.Status),
		PaymentStatus:    string(o.PaymentStatus),
		PaymentMethod:    o.PaymentMethod,
		PaymentReference: o.PaymentReference,
		DeliveryType:     string(o.DeliveryType),
		DeliveryAddress:  o.DeliveryAddress,
		DeliveryFee:      o.DeliveryFee,
		TotalAmount:      o.TotalAmount,
		Notes:            o.Notes,
		Items:            items,
		CreatedAt:        o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toOrderViews(orders []*order.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderView(o))
	}
	return out
}
