package order

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/unibookshop/unibookshop/internal/domain/book"
	"github.com/unibookshop/unibookshop/internal/domain/order"
)

// OrderStatusUseCase 订单状态维护用例（admin/cashier）
// 设计说明：
// 1. 履约状态与支付状态是两条独立轴，各自独立更新
// 2. 六个履约状态之间不设转移图（宽松语义），唯一的副作用规则是：
//    转移"进入"cancelled时回补库存，且只回补一次——
//    对已取消订单重复设cancelled是无副作用的幂等操作
// 3. 取消不触碰支付状态：退款是独立的对账动作
type OrderStatusUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	txManager TxManager
}

// NewOrderStatusUseCase 创建订单状态用例
func NewOrderStatusUseCase(orderRepo order.Repository, bookRepo book.Repository, txManager TxManager) *OrderStatusUseCase {
	return &OrderStatusUseCase{orderRepo: orderRepo, bookRepo: bookRepo, txManager: txManager}
}

// UpdateStatus 更新履约状态
func (uc *OrderStatusUseCase) UpdateStatus(ctx context.Context, orderID uint, newStatus string) (*OrderView, error) {
	status := order.Status(newStatus)
	if !status.IsValid() {
		return nil, order.ErrInvalidStatus
	}

	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// 回补库存只在"非cancelled → cancelled"这一条边上发生
	restock := status == order.StatusCancelled && o.Status != order.StatusCancelled

	o.Status = status

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.orderRepo.UpdateStatus(txCtx, o); err != nil {
			return err
		}
		if restock {
			for _, item := range o.Items {
				if err := uc.bookRepo.IncrementStock(txCtx, item.BookID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if restock {
		logrus.WithFields(logrus.Fields{
			"order_number": o.OrderNumber,
			"items":        len(o.Items),
		}).Info("订单取消，库存已回补")
	}

	view := toOrderView(o)
	return &view, nil
}

// UpdatePaymentRequest 更新支付状态请求
type UpdatePaymentRequest struct {
	PaymentStatus    string
	PaymentReference string // 非空时覆盖
}

// UpdatePayment 更新支付状态（后台人工对账入口）
// 不触发回补库存；payment_reference只在入参非空时覆盖
func (uc *OrderStatusUseCase) UpdatePayment(ctx context.Context, orderID uint, req UpdatePaymentRequest) (*OrderView, error) {
	status := order.PaymentStatus(req.PaymentStatus)
	if !status.IsValid() {
		return nil, order.ErrInvalidPaymentStatus
	}

	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	o.PaymentStatus = status
	if req.PaymentReference != "" {
		o.PaymentReference = req.PaymentReference
	}

	if err := uc.orderRepo.UpdateStatus(ctx, o); err != nil {
		return nil, err
	}

	view := toOrderView(o)
	return &view, nil
}
