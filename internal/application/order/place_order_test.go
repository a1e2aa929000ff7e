package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unibookshop/unibookshop/internal/domain/book"
	"github.com/unibookshop/unibookshop/internal/domain/delivery"
	"github.com/unibookshop/unibookshop/internal/domain/order"
	"github.com/unibookshop/unibookshop/internal/domain/user"
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

func testBook(id uint, price int64, stock int) *book.Book {
	b := book.NewBook("测试图书", "测试作者", "", price, stock)
	b.ID = id
	return b
}

func testAddress() *user.Address {
	return &user.Address{
		Street:  "1 University Road",
		City:    "Ibadan",
		State:   "Oyo",
		Country: "Nigeria",
	}
}

// TestPlaceOrderPickup 测试自提订单：价格冻结、总额、库存扣减
func TestPlaceOrderPickup(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	bookRepo := newFakeBookRepo(testBook(1, 250000, 10), testBook(2, 180000, 5))
	deliveryRepo := newFakeDeliveryRepo()
	tx := &passTxManager{}

	uc := NewPlaceOrderUseCase(orderRepo, bookRepo, deliveryRepo, tx, 500)

	resp, err := uc.Execute(context.Background(), PlaceOrderRequest{
		UserID: 1,
		Items: []PlaceOrderItem{
			{BookID: 1, Quantity: 2},
			{BookID: 2, Quantity: 1},
		},
		DeliveryType:  "pickup",
		PaymentMethod: "paystack",
	})
	require.NoError(t, err)

	// 总额 = 2*250000 + 1*180000，自提不收配送费
	assert.Equal(t, int64(680000), resp.TotalAmount)
	assert.Equal(t, int64(0), resp.DeliveryFee)
	assert.Equal(t, "pending", resp.Status)
	assert.Regexp(t, `^UBS-\d{8}-\d{3}$`, resp.OrderNumber)

	// 库存已扣
	b1, _ := bookRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 8, b1.StockQuantity)
	b2, _ := bookRepo.FindByID(context.Background(), 2)
	assert.Equal(t, 4, b2.StockQuantity)

	// 行项冻结了下单时的单价
	stored, err := orderRepo.FindByID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, int64(250000), stored.Items[0].UnitPrice)
	assert.Equal(t, int64(500000), stored.Items[0].Subtotal)

	// 自提订单不产生配送单
	_, err = deliveryRepo.FindByOrderID(context.Background(), resp.OrderID)
	assert.ErrorIs(t, err, delivery.ErrDeliveryNotFound)

	assert.Equal(t, 1, tx.calls, "下单应该恰好开启一个事务")
}

// TestPlaceOrderDelivery 测试配送订单：配送费与配送单
func TestPlaceOrderDelivery(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	bookRepo := newFakeBookRepo(testBook(1, 250000, 10))
	deliveryRepo := newFakeDeliveryRepo()

	uc := NewPlaceOrderUseCase(orderRepo, bookRepo, deliveryRepo, &passTxManager{}, 500)

	resp, err := uc.Execute(context.Background(), PlaceOrderRequest{
		UserID:          1,
		Items:           []PlaceOrderItem{{BookID: 1, Quantity: 1}},
		DeliveryType:    "delivery",
		DeliveryAddress: testAddress(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(250500), resp.TotalAmount, "配送订单总额要包含配送费")
	assert.Equal(t, int64(500), resp.DeliveryFee)

	// 配送单随订单创建，初始pending且未指派
	d, err := deliveryRepo.FindByOrderID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, delivery.StatusPending, d.Status)
	assert.Nil(t, d.AgentID)
}

// TestPlaceOrderValidation 测试下单参数校验
func TestPlaceOrderValidation(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	bookRepo := newFakeBookRepo(testBook(1, 250000, 10))
	uc := NewPlaceOrderUseCase(orderRepo, bookRepo, newFakeDeliveryRepo(), &passTxManager{}, 500)
	ctx := context.Background()

	t.Run("空明细", func(t *testing.T) {
		_, err := uc.Execute(ctx, PlaceOrderRequest{UserID: 1, DeliveryType: "pickup"})
		assert.ErrorIs(t, err, order.ErrEmptyItems)
	})

	t.Run("非法交付方式", func(t *testing.T) {
		_, err := uc.Execute(ctx, PlaceOrderRequest{
			UserID:       1,
			Items:        []PlaceOrderItem{{BookID: 1, Quantity: 1}},
			DeliveryType: "courier",
		})
		assert.ErrorIs(t, err, order.ErrInvalidDeliveryType)
	})

	t.Run("配送订单缺地址", func(t *testing.T) {
		_, err := uc.Execute(ctx, PlaceOrderRequest{
			UserID:       1,
			Items:        []PlaceOrderItem{{BookID: 1, Quantity: 1}},
			DeliveryType: "delivery",
		})
		assert.ErrorIs(t, err, order.ErrMissingDeliveryAddress)
	})

	t.Run("数量必须大于0", func(t *testing.T) {
		_, err := uc.Execute(ctx, PlaceOrderRequest{
			UserID:       1,
			Items:        []PlaceOrderItem{{BookID: 1, Quantity: 0}},
			DeliveryType: "pickup",
		})
		assert.ErrorIs(t, err, order.ErrInvalidQuantity)
	})

	t.Run("图书不存在", func(t *testing.T) {
		_, err := uc.Execute(ctx, PlaceOrderRequest{
			UserID:       1,
			Items:        []PlaceOrderItem{{BookID: 99, Quantity: 1}},
			DeliveryType: "pickup",
		})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

// TestPlaceOrderInsufficientStock 测试库存不足（预检拦截）
func TestPlaceOrderInsufficientStock(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	bookRepo := newFakeBookRepo(testBook(1, 250000, 3))
	uc := NewPlaceOrderUseCase(orderRepo, bookRepo, newFakeDeliveryRepo(), &passTxManager{}, 500)

	_, err := uc.Execute(context.Background(), PlaceOrderRequest{
		UserID:       1,
		Items:        []PlaceOrderItem{{BookID: 1, Quantity: 5}},
		DeliveryType: "pickup",
	})
	require.Error(t, err)

	// 预检给出带书名与库存数的友好报错
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeInsufficientStock, appErr.Code)
	assert.Contains(t, appErr.Message, "测试图书")
	assert.Contains(t, appErr.Message, "3")

	// 库存没有被动过
	b, _ := bookRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 3, b.StockQuantity)
}

// TestPlaceOrderConcurrentDrain 预检通过但事务内扣减失败（并发买光）
func TestPlaceOrderConcurrentDrain(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	bookRepo := newFakeBookRepo(testBook(1, 250000, 10))
	bookRepo.failDecrementFor[1] = true

	uc := NewPlaceOrderUseCase(orderRepo, bookRepo, newFakeDeliveryRepo(), &passTxManager{}, 500)

	_, err := uc.Execute(context.Background(), PlaceOrderRequest{
		UserID:       1,
		Items:        []PlaceOrderItem{{BookID: 1, Quantity: 2}},
		DeliveryType: "pickup",
	})
	assert.True(t, errors.Is(err, book.ErrInsufficientStock), "事务内扣减失败应该上抛库存不足")
}
