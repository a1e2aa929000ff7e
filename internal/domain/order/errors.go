package order

import (
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrOrderNumberDuplicate 订单号冲突（唯一索引兜底）
	ErrOrderNumberDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "订单号冲突，请重试")

	// ErrEmptyItems 订单明细为空
	ErrEmptyItems = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")

	// ErrInvalidStatus 履约状态值不合法
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "订单状态值不合法")

	// ErrInvalidPaymentStatus 支付状态值不合法
	ErrInvalidPaymentStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "支付状态值不合法")

	// ErrInvalidDeliveryType 交付方式不合法
	ErrInvalidDeliveryType = apperrors.New(apperrors.ErrCodeInvalidParams, "交付方式必须是pickup或delivery")

	// ErrMissingDeliveryAddress 配送订单缺少收货地址
	ErrMissingDeliveryAddress = apperrors.New(apperrors.ErrCodeInvalidParams, "配送订单必须填写收货地址")
)
