package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unibookshop/unibookshop/internal/domain/order"
)

const testSecret = "sk_test_webhook_secret"

// fakeOrderRepo 内存订单仓储桩（按支付引用索引）
type fakeOrderRepo struct {
	orders      map[string]*order.Order
	updateCalls int
	updateErr   error
}

func newFakeOrderRepo(orders ...*order.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[string]*order.Order)}
	for _, o := range orders {
		r.orders[o.PaymentReference] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error { return nil }

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) FindByPaymentReference(ctx context.Context, reference string) (*order.Order, error) {
	o, ok := r.orders[reference]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, o *order.Order) error {
	r.updateCalls++
	if r.updateErr != nil {
		return r.updateErr
	}
	stored := r.orders[o.PaymentReference]
	stored.Status = o.Status
	stored.PaymentStatus = o.PaymentStatus
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context) ([]*order.Order, error) { return nil, nil }

func (r *fakeOrderRepo) ListByUserID(ctx context.Context, userID uint) ([]*order.Order, error) {
	return nil, nil
}

// sign 按Paystack的方式计算载荷签名
func sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func chargeSuccessBody(reference string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"charge.success","data":{"reference":"%s","status":"success","amount":250000}}`,
		reference))
}

func pendingOrder(reference string) *order.Order {
	o := order.NewOrder("UBS-12345678-001", 1, nil, 250000)
	o.ID = 1
	o.PaymentReference = reference
	return o
}

// TestWebhookApplied 合法的charge.success落账
func TestWebhookApplied(t *testing.T) {
	repo := newFakeOrderRepo(pendingOrder("ps_ref_001"))
	uc := NewWebhookUseCase(repo, testSecret)

	body := chargeSuccessBody("ps_ref_001")
	result := uc.Handle(context.Background(), body, sign(body))

	assert.Equal(t, ResultApplied, result)
	assert.Equal(t, 1, repo.updateCalls)

	o, err := repo.FindByPaymentReference(context.Background(), "ps_ref_001")
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, order.StatusConfirmed, o.Status)
}

// TestWebhookBadSignature 签名不对：拒绝且不读不写任何订单
func TestWebhookBadSignature(t *testing.T) {
	repo := newFakeOrderRepo(pendingOrder("ps_ref_001"))
	uc := NewWebhookUseCase(repo, testSecret)

	body := chargeSuccessBody("ps_ref_001")

	t.Run("伪造签名", func(t *testing.T) {
		result := uc.Handle(context.Background(), body, "deadbeef")
		assert.Equal(t, ResultUnverified, result)
	})

	t.Run("密钥不同", func(t *testing.T) {
		mac := hmac.New(sha512.New, []byte("sk_test_other_secret"))
		mac.Write(body)
		result := uc.Handle(context.Background(), body, hex.EncodeToString(mac.Sum(nil)))
		assert.Equal(t, ResultUnverified, result)
	})

	t.Run("载荷被篡改", func(t *testing.T) {
		tampered := chargeSuccessBody("ps_ref_002")
		result := uc.Handle(context.Background(), tampered, sign(body))
		assert.Equal(t, ResultUnverified, result)
	})

	// 验签失败的通知不碰存储
	assert.Equal(t, 0, repo.updateCalls)
	o, _ := repo.FindByPaymentReference(context.Background(), "ps_ref_001")
	assert.Equal(t, order.PaymentPending, o.PaymentStatus)
}

// TestWebhookIdempotent 重复通知：第二次是no-op
func TestWebhookIdempotent(t *testing.T) {
	repo := newFakeOrderRepo(pendingOrder("ps_ref_001"))
	uc := NewWebhookUseCase(repo, testSecret)

	body := chargeSuccessBody("ps_ref_001")
	assert.Equal(t, ResultApplied, uc.Handle(context.Background(), body, sign(body)))
	assert.Equal(t, ResultIgnored, uc.Handle(context.Background(), body, sign(body)), "重复通知应该ack但不落账")
	assert.Equal(t, 1, repo.updateCalls, "第二次通知不应该写库")
}

// TestWebhookIgnoredEvents 非支付成功事件：验签通过即ack
func TestWebhookIgnoredEvents(t *testing.T) {
	repo := newFakeOrderRepo(pendingOrder("ps_ref_001"))
	uc := NewWebhookUseCase(repo, testSecret)
	ctx := context.Background()

	cases := []struct {
		name string
		body []byte
	}{
		{"charge.failed事件", []byte(`{"event":"charge.failed","data":{"reference":"ps_ref_001","status":"failed"}}`)},
		{"transfer事件", []byte(`{"event":"transfer.success","data":{"reference":"ps_ref_001","status":"success"}}`)},
		{"内层status不是success", []byte(`{"event":"charge.success","data":{"reference":"ps_ref_001","status":"abandoned"}}`)},
		{"验签通过但不是JSON", []byte(`not-json`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := uc.Handle(ctx, tc.body, sign(tc.body))
			assert.Equal(t, ResultIgnored, result)
		})
	}

	assert.Equal(t, 0, repo.updateCalls)
}

// TestWebhookOrderNotFound 引用找不到订单
func TestWebhookOrderNotFound(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := NewWebhookUseCase(repo, testSecret)

	body := chargeSuccessBody("ps_ref_unknown")
	result := uc.Handle(context.Background(), body, sign(body))
	assert.Equal(t, ResultOrderNotFound, result)
}

// TestWebhookStorageError 落库失败返回Error（让Paystack重发）
func TestWebhookStorageError(t *testing.T) {
	repo := newFakeOrderRepo(pendingOrder("ps_ref_001"))
	repo.updateErr = fmt.Errorf("connection reset")
	uc := NewWebhookUseCase(repo, testSecret)

	body := chargeSuccessBody("ps_ref_001")
	result := uc.Handle(context.Background(), body, sign(body))
	assert.Equal(t, ResultError, result)
}

// TestVerifySignature 签名校验本体
func TestVerifySignature(t *testing.T) {
	uc := NewWebhookUseCase(newFakeOrderRepo(), testSecret)

	body := []byte(`{"event":"charge.success"}`)
	assert.True(t, uc.VerifySignature(body, sign(body)))
	assert.False(t, uc.VerifySignature(body, ""))
	assert.False(t, uc.VerifySignature([]byte(`{}`), sign(body)))
}
