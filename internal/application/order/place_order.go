package order

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/unibookshop/unibookshop/internal/domain/book"
	"github.com/unibookshop/unibookshop/internal/domain/delivery"
	"github.com/unibookshop/unibookshop/internal/domain/order"
	"github.com/unibookshop/unibookshop/internal/domain/user"
	"github.com/unibookshop/unibookshop/pkg/metrics"
)

// TxManager 事务边界抽象
// infrastructure层的mysql.TxManager实现它；单测注入直通桩
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PlaceOrderUseCase 下单用例（整个系统最核心的写路径）
// 设计说明：
// 1. 预检（取书、校验数量与库存、冻结价格）在事务外完成，
//    缩短持锁时间
// 2. 事务内三步：创建订单（含行项）→ 条件原子扣库存 → 建配送单。
//    任何一步失败整体回滚，库存与订单始终一致
// 3. 扣库存不做SELECT FOR UPDATE，而是单条带条件的UPDATE：
//    UPDATE books SET stock_quantity = stock_quantity - ?
//    WHERE id = ? AND stock_quantity - ? >= 0
//    0行受影响即库存不足。并发下单由行锁天然串行化，不会超卖
// 4. 预检通过但事务内扣减失败（并发把库存买光）同样返回库存不足
type PlaceOrderUseCase struct {
	orderRepo    order.Repository
	bookRepo     book.Repository
	deliveryRepo delivery.Repository
	txManager    TxManager
	deliveryFee  int64 // 固定配送费（kobo），来自配置
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	deliveryRepo delivery.Repository,
	txManager TxManager,
	deliveryFee int64,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		orderRepo:    orderRepo,
		bookRepo:     bookRepo,
		deliveryRepo: deliveryRepo,
		txManager:    txManager,
		deliveryFee:  deliveryFee,
	}
}

// =========================================
// 应用层DTO
// =========================================

// PlaceOrderItem 下单行项
type PlaceOrderItem struct {
	BookID   uint
	Quantity int
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	UserID          uint
	Items           []PlaceOrderItem
	DeliveryType    string // pickup | delivery
	DeliveryAddress *user.Address
	PaymentMethod   string
	Notes           string
}

// PlaceOrderResponse 下单响应
type PlaceOrderResponse struct {
	OrderID     uint   `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"total_amount"` // kobo
	DeliveryFee int64  `json:"delivery_fee"` // kobo
	CreatedAt   string `json:"created_at"`
}

// Execute 执行下单
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	// 1. 参数校验
	if len(req.Items) == 0 {
		return nil, order.ErrEmptyItems
	}
	deliveryType := order.DeliveryType(req.DeliveryType)
	if !deliveryType.IsValid() {
		return nil, order.ErrInvalidDeliveryType
	}
	if deliveryType == order.DeliveryDelivery && req.DeliveryAddress == nil {
		return nil, order.ErrMissingDeliveryAddress
	}

	// 2. 取书、校验数量、冻结价格快照
	// 注意：这里故意不过滤is_active——能按主键找到的书就能下单
	var orderItems []order.Item
	var itemsTotal int64
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, order.ErrInvalidQuantity
		}

		b, err := uc.bookRepo.FindByID(ctx, item.BookID)
		if err != nil {
			return nil, err
		}
		// 预检库存，给出友好报错；最终裁决在事务内的条件扣减
		if b.StockQuantity < item.Quantity {
			return nil, insufficientStockError(b, item.Quantity)
		}

		subtotal := b.Price * int64(item.Quantity)
		itemsTotal += subtotal
		orderItems = append(orderItems, order.Item{
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			UnitPrice: b.Price,
			Subtotal:  subtotal,
		})
	}

	// 3. 组装订单
	var fee int64
	if deliveryType == order.DeliveryDelivery {
		fee = uc.deliveryFee
	}

	o := order.NewOrder(order.GenerateOrderNumber(), req.UserID, orderItems, itemsTotal+fee)
	o.DeliveryType = deliveryType
	o.DeliveryAddress = req.DeliveryAddress
	o.DeliveryFee = fee
	o.PaymentMethod = req.PaymentMethod
	o.Notes = req.Notes

	// 4. 事务：创建订单 → 扣库存 → 建配送单
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}

		for _, item := range o.Items {
			if err := uc.bookRepo.DecrementStock(txCtx, item.BookID, item.Quantity); err != nil {
				return err
			}
		}

		if o.DeliveryType == order.DeliveryDelivery {
			if err := uc.deliveryRepo.Create(txCtx, delivery.NewDelivery(o.ID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		metrics.OrdersFailedTotal.Inc()
		return nil, err
	}

	metrics.OrdersPlacedTotal.Inc()
	logrus.WithFields(logrus.Fields{
		"order_number": o.OrderNumber,
		"user_id":      o.UserID,
		"total":        o.TotalAmount,
	}).Info("订单创建成功")

	return &PlaceOrderResponse{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		DeliveryFee: o.DeliveryFee,
		CreatedAt:   o.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
