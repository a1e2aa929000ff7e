package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unibookshop/unibookshop/internal/domain/order"
)

func placeTestOrder(t *testing.T, orderRepo *fakeOrderRepo, bookRepo *fakeBookRepo) uint {
	t.Helper()
	uc := NewPlaceOrderUseCase(orderRepo, bookRepo, newFakeDeliveryRepo(), &passTxManager{}, 500)
	resp, err := uc.Execute(context.Background(), PlaceOrderRequest{
		UserID:       1,
		Items:        []PlaceOrderItem{{BookID: 1, Quantity: 3}},
		DeliveryType: "pickup",
	})
	require.NoError(t, err)
	return resp.OrderID
}

// TestUpdateStatus 测试履约状态更新
func TestUpdateStatus(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	bookRepo := newFakeBookRepo(testBook(1, 250000, 10))
	orderID := placeTestOrder(t, orderRepo, bookRepo)

	uc := NewOrderStatusUseCase(orderRepo, bookRepo, &passTxManager{})
	ctx := context.Background()

	t.Run("正常流转", func(t *testing.T) {
		view, err := uc.UpdateStatus(ctx, orderID, "processing")
		require.NoError(t, err)
		assert.Equal(t, "processing", view.Status)

		stored, _ := orderRepo.FindByID(ctx, orderID)
		assert.Equal(t, order.StatusProcessing, stored.Status)
	})

	t.Run("非法状态值", func(t *testing.T) {
		_, err := uc.UpdateStatus(ctx, orderID, "refunded")
		assert.ErrorIs(t, err, order.ErrInvalidStatus)
	})

	t.Run("订单不存在", func(t *testing.T) {
		_, err := uc.UpdateStatus(ctx, 999, "confirmed")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

// TestCancelRestock 取消订单回补库存，且只回补一次
func TestCancelRestock(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	bookRepo := newFakeBookRepo(testBook(1, 250000, 10))
	orderID := placeTestOrder(t, orderRepo, bookRepo) // 扣掉3本，剩7

	uc := NewOrderStatusUseCase(orderRepo, bookRepo, &passTxManager{})
	ctx := context.Background()

	b, _ := bookRepo.FindByID(ctx, 1)
	require.Equal(t, 7, b.StockQuantity)

	// 取消：库存回到10
	view, err := uc.UpdateStatus(ctx, orderID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", view.Status)

	b, _ = bookRepo.FindByID(ctx, 1)
	assert.Equal(t, 10, b.StockQuantity, "取消订单应该回补库存")

	// 重复取消：幂等，不会再补一次
	_, err = uc.UpdateStatus(ctx, orderID, "cancelled")
	require.NoError(t, err)

	b, _ = bookRepo.FindByID(ctx, 1)
	assert.Equal(t, 10, b.StockQuantity, "重复取消不能重复回补")
}

// TestCancelKeepsPaymentStatus 取消不触碰支付状态
func TestCancelKeepsPaymentStatus(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	bookRepo := newFakeBookRepo(testBook(1, 250000, 10))
	orderID := placeTestOrder(t, orderRepo, bookRepo)

	uc := NewOrderStatusUseCase(orderRepo, bookRepo, &passTxManager{})
	ctx := context.Background()

	// 先人工置为paid
	_, err := uc.UpdatePayment(ctx, orderID, UpdatePaymentRequest{PaymentStatus: "paid"})
	require.NoError(t, err)

	// 取消订单
	view, err := uc.UpdateStatus(ctx, orderID, "cancelled")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", view.Status)
	assert.Equal(t, "paid", view.PaymentStatus, "取消不代表退款，支付状态保持paid")
}

// TestUpdatePayment 测试支付状态更新与引用覆盖规则
func TestUpdatePayment(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	bookRepo := newFakeBookRepo(testBook(1, 250000, 10))
	orderID := placeTestOrder(t, orderRepo, bookRepo)

	uc := NewOrderStatusUseCase(orderRepo, bookRepo, &passTxManager{})
	ctx := context.Background()

	t.Run("写入支付引用", func(t *testing.T) {
		view, err := uc.UpdatePayment(ctx, orderID, UpdatePaymentRequest{
			PaymentStatus:    "paid",
			PaymentReference: "ps_ref_001",
		})
		require.NoError(t, err)
		assert.Equal(t, "paid", view.PaymentStatus)
		assert.Equal(t, "ps_ref_001", view.PaymentReference)
	})

	t.Run("空引用不覆盖已有值", func(t *testing.T) {
		view, err := uc.UpdatePayment(ctx, orderID, UpdatePaymentRequest{PaymentStatus: "refunded"})
		require.NoError(t, err)
		assert.Equal(t, "refunded", view.PaymentStatus)
		assert.Equal(t, "ps_ref_001", view.PaymentReference, "空引用不应该清掉已有引用")
	})

	t.Run("非法支付状态", func(t *testing.T) {
		_, err := uc.UpdatePayment(ctx, orderID, UpdatePaymentRequest{PaymentStatus: "settled"})
		assert.ErrorIs(t, err, order.ErrInvalidPaymentStatus)
	})

	t.Run("支付状态更新不回补库存", func(t *testing.T) {
		b, _ := bookRepo.FindByID(ctx, 1)
		assert.Equal(t, 7, b.StockQuantity)
	})
}
