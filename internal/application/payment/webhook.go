package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/unibookshop/unibookshop/internal/domain/order"
	"github.com/unibookshop/unibookshop/pkg/metrics"
)

// Result Webhook处理结果
// 接口层按Result直接映射HTTP状态码（Paystack的重试只看状态行）
type Result int

const (
	// ResultApplied 已验证且状态已落库
	ResultApplied Result = iota
	// ResultIgnored 已验证但无需处理（非charge.success、重复通知等）
	ResultIgnored
	// ResultUnverified 签名不匹配
	ResultUnverified
	// ResultOrderNotFound 引用找不到对应订单
	ResultOrderNotFound
	// ResultError 存储层意外失败
	ResultError
)

// metricLabel 埋点标签
func (r Result) metricLabel() string {
	switch r {
	case ResultApplied:
		return "applied"
	case ResultIgnored:
		return "ignored"
	case ResultUnverified:
		return "unverified"
	case ResultOrderNotFound:
		return "not_found"
	default:
		return "error"
	}
}

// WebhookUseCase Paystack Webhook对账用例
// 设计说明：
// 1. 签名是HMAC-SHA512(secret, 原始请求体字节)的hex，与
//    X-Paystack-Signature头常数时间比较。必须用收到的原始字节——
//    任何反序列化再序列化都会破坏签名
// 2. 验签失败立刻返回，不读任何业务状态
// 3. 只有charge.success且内层data.status=="success"才改订单；
//    其他事件验签通过即ack，防止Paystack无限重试
// 4. 幂等：订单已是paid/confirmed时重复通知是no-op，同样ack
type WebhookUseCase struct {
	orderRepo order.Repository
	secretKey string
}

// NewWebhookUseCase 创建Webhook用例
func NewWebhookUseCase(orderRepo order.Repository, secretKey string) *WebhookUseCase {
	return &WebhookUseCase{orderRepo: orderRepo, secretKey: secretKey}
}

// event Paystack事件结构（只取用到的字段）
type event struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
	} `json:"data"`
}

// VerifySignature 校验Webhook签名
func (uc *WebhookUseCase) VerifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(uc.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	// hmac.Equal常数时间比较，防时序侧信道
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Handle 处理Webhook通知
// body必须是原始请求体字节；signature来自X-Paystack-Signature头
func (uc *WebhookUseCase) Handle(ctx context.Context, body []byte, signature string) Result {
	result := uc.handle(ctx, body, signature)
	metrics.WebhookEventsTotal.WithLabelValues(result.metricLabel()).Inc()
	return result
}

func (uc *WebhookUseCase) handle(ctx context.Context, body []byte, signature string) Result {
	// 1. 验签（任何状态读取之前）
	if !uc.VerifySignature(body, signature) {
		logrus.Warn("Webhook签名校验失败")
		return ResultUnverified
	}

	// 2. 解析事件；验签通过但解析不了的载荷直接ack（不值得重试）
	var ev event
	if err := json.Unmarshal(body, &ev); err != nil {
		logrus.WithError(err).Warn("Webhook载荷解析失败")
		return ResultIgnored
	}

	// 3. 只处理支付成功事件
	if ev.Event != "charge.success" || ev.Data.Status != "success" {
		logrus.WithField("event", ev.Event).Debug("忽略Webhook事件")
		return ResultIgnored
	}

	// 4. 按支付引用定位订单
	o, err := uc.orderRepo.FindByPaymentReference(ctx, ev.Data.Reference)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			logrus.WithField("reference", ev.Data.Reference).Warn("Webhook引用无对应订单")
			return ResultOrderNotFound
		}
		logrus.WithError(err).Error("Webhook查询订单失败")
		return ResultError
	}

	// 5. 落账（幂等：目标状态已生效则不写库）
	if !o.MarkPaid() {
		logrus.WithField("order_number", o.OrderNumber).Info("Webhook重复通知，订单已支付")
		return ResultIgnored
	}

	if err := uc.orderRepo.UpdateStatus(ctx, o); err != nil {
		logrus.WithError(err).WithField("order_number", o.OrderNumber).Error("Webhook更新订单失败")
		return ResultError
	}

	logrus.WithFields(logrus.Fields{
		"order_number": o.OrderNumber,
		"reference":    ev.Data.Reference,
		"amount":       ev.Data.Amount,
	}).Info("支付确认，订单已置为confirmed")
	return ResultApplied
}
