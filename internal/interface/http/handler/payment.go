package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apppayment "github.com/unibookshop/unibookshop/internal/application/payment"
)

// PaymentHandler 支付Webhook处理器
// 设计说明：
// 1. 这是整个API里唯一不走统一响应信封的端点——Paystack的重试
//    机制只认HTTP状态行，返回体只是简短说明
// 2. 必须读原始请求体字节做验签，任何绑定/解析都在验签之后
// 3. 不挂认证中间件：请求方是Paystack，不是登录用户
type PaymentHandler struct {
	webhookUseCase *apppayment.WebhookUseCase
}

// NewPaymentHandler 创建支付处理器
func NewPaymentHandler(webhookUseCase *apppayment.WebhookUseCase) *PaymentHandler {
	return &PaymentHandler{webhookUseCase: webhookUseCase}
}

// Webhook Paystack支付回调
// @Summary      Paystack Webhook
// @Description  HMAC-SHA512验签后按事件对账；验签失败400，引用无订单404
// @Tags         支付
// @Accept       json
// @Produce      plain
// @Param        X-Paystack-Signature header string true "HMAC-SHA512签名（hex）"
// @Success      200 {string} string "ok"
// @Failure      400 {string} string "invalid signature"
// @Failure      404 {string} string "order not found"
// @Failure      500 {string} string "internal error"
// @Router       /api/v1/payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		logrus.WithError(err).Warn("读取Webhook请求体失败")
		c.String(http.StatusBadRequest, "bad request")
		return
	}

	signature := c.GetHeader("X-Paystack-Signature")

	switch h.webhookUseCase.Handle(c.Request.Context(), body, signature) {
	case apppayment.ResultApplied, apppayment.ResultIgnored:
		c.String(http.StatusOK, "ok")
	case apppayment.ResultUnverified:
		c.String(http.StatusBadRequest, "invalid signature")
	case apppayment.ResultOrderNotFound:
		c.String(http.StatusNotFound, "order not found")
	default:
		c.String(http.StatusInternalServerError, "internal error")
	}
}
