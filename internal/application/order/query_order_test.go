package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unibookshop/unibookshop/internal/domain/user"
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// TestQueryOrderAccess 订单详情的访问控制
func TestQueryOrderAccess(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	bookRepo := newFakeBookRepo(testBook(1, 250000, 10))
	deliveryRepo := newFakeDeliveryRepo()
	ctx := context.Background()

	// 用户1下一单配送订单（orderID=1，配送单随之创建）
	place := NewPlaceOrderUseCase(orderRepo, bookRepo, deliveryRepo, &passTxManager{}, 500)
	resp, err := place.Execute(ctx, PlaceOrderRequest{
		UserID:          1,
		Items:           []PlaceOrderItem{{BookID: 1, Quantity: 1}},
		DeliveryType:    "delivery",
		DeliveryAddress: testAddress(),
	})
	require.NoError(t, err)

	uc := NewQueryOrderUseCase(orderRepo, deliveryRepo)

	t.Run("本人可见", func(t *testing.T) {
		view, err := uc.Get(ctx, resp.OrderID, 1, user.RoleStudent)
		require.NoError(t, err)
		assert.Equal(t, resp.OrderNumber, view.OrderNumber)
	})

	t.Run("其他学生不可见", func(t *testing.T) {
		_, err := uc.Get(ctx, resp.OrderID, 2, user.RoleStudent)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("admin和cashier可见", func(t *testing.T) {
		_, err := uc.Get(ctx, resp.OrderID, 99, user.RoleAdmin)
		assert.NoError(t, err)
		_, err = uc.Get(ctx, resp.OrderID, 99, user.RoleCashier)
		assert.NoError(t, err)
	})

	t.Run("未指派的配送员不可见", func(t *testing.T) {
		_, err := uc.Get(ctx, resp.OrderID, 5, user.RoleDeliveryAgent)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("被指派的配送员可见", func(t *testing.T) {
		d, err := deliveryRepo.FindByOrderID(ctx, resp.OrderID)
		require.NoError(t, err)
		d.Assign(5)
		require.NoError(t, deliveryRepo.Update(ctx, d))

		_, err = uc.Get(ctx, resp.OrderID, 5, user.RoleDeliveryAgent)
		assert.NoError(t, err)
	})

	t.Run("我的订单列表只有自己的", func(t *testing.T) {
		mine, err := uc.ListMine(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		other, err := uc.ListMine(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}
