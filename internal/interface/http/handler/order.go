package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/unibookshop/unibookshop/internal/application/order"
	"github.com/unibookshop/unibookshop/internal/domain/user"
	"github.com/unibookshop/unibookshop/internal/interface/http/dto"
	"github.com/unibookshop/unibookshop/internal/interface/http/middleware"
	"github.com/unibookshop/unibookshop/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	placeUseCase  *apporder.PlaceOrderUseCase
	statusUseCase *apporder.OrderStatusUseCase
	queryUseCase  *apporder.QueryOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeUseCase *apporder.PlaceOrderUseCase,
	statusUseCase *apporder.OrderStatusUseCase,
	queryUseCase *apporder.QueryOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeUseCase:  placeUseCase,
		statusUseCase: statusUseCase,
		queryUseCase:  queryUseCase,
	}
}

// Place 下单
// @Summary      下单
// @Description  价格以服务端当前价为准；delivery类型必须带配送地址并收取固定配送费
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest true "订单"
// @Success      200 {object} response.Response "下单成功"
// @Failure      400 {object} response.Response "库存不足/参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	items := make([]apporder.PlaceOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, apporder.PlaceOrderItem{BookID: it.BookID, Quantity: it.Quantity})
	}

	var addr *user.Address
	if req.DeliveryAddress != nil {
		addr = &user.Address{
			Street:  req.DeliveryAddress.Street,
			City:    req.DeliveryAddress.City,
			State:   req.DeliveryAddress.State,
			Country: req.DeliveryAddress.Country,
			Zip:     req.DeliveryAddress.Zip,
		}
	}

	result, err := h.placeUseCase.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID:          middleware.MustGetUserID(c),
		Items:           items,
		DeliveryType:    req.DeliveryType,
		DeliveryAddress: addr,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// List 全部订单（admin/cashier）
// @Summary      全部订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "订单列表"
// @Failure      403 {object} response.Response "没有权限"
// @Router       /api/v1/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.queryUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, orders)
}

// ListMine 我的订单
// @Summary      我的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "订单列表"
// @Router       /api/v1/orders/me [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.queryUseCase.ListMine(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, orders)
}

// Get 订单详情
// @Summary      订单详情
// @Description  订单本人、admin/cashier，或被指派到该订单的配送员可见
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response "订单详情"
// @Failure      403 {object} response.Response "没有权限"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.queryUseCase.Get(c.Request.Context(), id,
		middleware.MustGetUserID(c), middleware.GetRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateStatus 更新履约状态（admin/cashier）
// @Summary      更新订单状态
// @Description  转入cancelled时回补库存（幂等，只回补一次）
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response "更新成功"
// @Failure      400 {object} response.Response "状态值不合法"
// @Router       /api/v1/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	order, err := h.statusUseCase.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, order)
}

// UpdatePayment 更新支付状态（admin/cashier）
// @Summary      更新支付状态
// @Description  人工对账入口；payment_reference只在非空时覆盖
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdatePaymentStatusRequest true "支付状态"
// @Success      200 {object} response.Response "更新成功"
// @Failure      400 {object} response.Response "状态值不合法"
// @Router       /api/v1/orders/{id}/payment [put]
func (h *OrderHandler) UpdatePayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	order, err := h.statusUseCase.UpdatePayment(c.Request.Context(), id, apporder.UpdatePaymentRequest{
		PaymentStatus:    req.PaymentStatus,
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, order)
}
