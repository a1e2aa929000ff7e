package dto

// CartItemRequest 购物车加购/更新请求
type CartItemRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

// WishlistRequest 心愿单收藏请求
type WishlistRequest struct {
	BookID              uint `json:"book_id" binding:"required"`
	NotifyWhenAvailable bool `json:"notify_when_available"`
}

// ReviewRequest 书评提交请求
type ReviewRequest struct {
	BookID  uint   `json:"book_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// PlaceOrderItemRequest 下单行项
type PlaceOrderItemRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,gt=0"`
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	Items           []PlaceOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryType    string                  `json:"delivery_type" binding:"required,oneof=pickup delivery"`
	DeliveryAddress *AddressRequest         `json:"delivery_address"`
	PaymentMethod   string                  `json:"payment_method"`
	Notes           string                  `json:"notes"`
}

// UpdateOrderStatusRequest 更新履约状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatusRequest 更新支付状态请求
type UpdatePaymentStatusRequest struct {
	PaymentStatus    string `json:"payment_status" binding:"required"`
	PaymentReference string `json:"payment_reference"`
}

// AssignDeliveryRequest 指派配送员请求
type AssignDeliveryRequest struct {
	AgentID uint `json:"agent_id" binding:"required"`
}

// UpdateDeliveryRequest 更新配送单请求
// 时间格式：2006-01-02 15:04:05；缺省字段不修改
type UpdateDeliveryRequest struct {
	Status       string  `json:"status"`
	PickupTime   *string `json:"pickup_time"`
	DeliveryTime *string `json:"delivery_time"`
	Notes        *string `json:"notes"`
}
