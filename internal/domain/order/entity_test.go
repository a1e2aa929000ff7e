package order

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGenerateOrderNumber 测试订单号格式
func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^UBS-\d{8}-\d{3}$`)

	for i := 0; i < 20; i++ {
		no := GenerateOrderNumber()
		assert.Regexp(t, pattern, no, "订单号格式应该是UBS-8位数字-3位数字")
	}
}

// TestCalculateTotal 测试订单总额计算
func TestCalculateTotal(t *testing.T) {
	t.Run("自提订单只算行项小计", func(t *testing.T) {
		o := NewOrder("UBS-00000001-001", 1, []Item{
			{BookID: 1, Quantity: 2, UnitPrice: 250000, Subtotal: 500000},
			{BookID: 2, Quantity: 1, UnitPrice: 180000, Subtotal: 180000},
		}, 680000)

		assert.Equal(t, int64(680000), o.CalculateTotal())
	})

	t.Run("配送订单要加配送费", func(t *testing.T) {
		o := NewOrder("UBS-00000001-002", 1, []Item{
			{BookID: 1, Quantity: 2, UnitPrice: 250000, Subtotal: 500000},
		}, 500500)
		o.DeliveryFee = 500

		assert.Equal(t, int64(500500), o.CalculateTotal())
	})

	t.Run("空订单总额等于配送费", func(t *testing.T) {
		o := &Order{DeliveryFee: 500}
		assert.Equal(t, int64(500), o.CalculateTotal())
	})
}

// TestNewOrder 测试订单初始状态
func TestNewOrder(t *testing.T) {
	o := NewOrder("UBS-12345678-042", 7, nil, 0)

	assert.Equal(t, StatusPending, o.Status, "新订单履约状态应该是pending")
	assert.Equal(t, PaymentPending, o.PaymentStatus, "新订单支付状态应该是pending")
	assert.Equal(t, uint(7), o.UserID)
	assert.False(t, o.CreatedAt.IsZero())
}

// TestMarkPaid 测试支付落账的幂等性
func TestMarkPaid(t *testing.T) {
	o := NewOrder("UBS-12345678-042", 1, nil, 100000)

	// 第一次落账：状态变化，返回true
	assert.True(t, o.MarkPaid(), "首次落账应该返回true")
	assert.Equal(t, PaymentPaid, o.PaymentStatus)
	assert.Equal(t, StatusConfirmed, o.Status)

	// 重复落账：no-op，返回false
	assert.False(t, o.MarkPaid(), "重复落账应该返回false")
	assert.Equal(t, PaymentPaid, o.PaymentStatus)
	assert.Equal(t, StatusConfirmed, o.Status)
}

// TestMarkPaidAfterShipped 已发货订单收到迟到的支付通知
func TestMarkPaidAfterShipped(t *testing.T) {
	o := NewOrder("UBS-12345678-042", 1, nil, 100000)
	o.Status = StatusShipped
	o.PaymentStatus = PaymentPaid

	// status不是confirmed，MarkPaid会把履约状态拉回confirmed
	assert.True(t, o.MarkPaid())
	assert.Equal(t, StatusConfirmed, o.Status)
}

// TestStatusIsValid 测试状态枚举校验
func TestStatusIsValid(t *testing.T) {
	valid := []Status{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "%s应该是合法状态", s)
	}
	assert.False(t, Status("refunded").IsValid())
	assert.False(t, Status("").IsValid())

	assert.True(t, PaymentPaid.IsValid())
	assert.False(t, PaymentStatus("confirmed").IsValid())

	assert.True(t, DeliveryPickup.IsValid())
	assert.True(t, DeliveryDelivery.IsValid())
	assert.False(t, DeliveryType("courier").IsValid())
}

// TestIsOwnedBy 测试订单归属判断
func TestIsOwnedBy(t *testing.T) {
	o := NewOrder("UBS-12345678-042", 3, nil, 0)
	assert.True(t, o.IsOwnedBy(3))
	assert.False(t, o.IsOwnedBy(4))
}
