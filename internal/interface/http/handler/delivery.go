package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appdelivery "github.com/unibookshop/unibookshop/internal/application/delivery"
	"github.com/unibookshop/unibookshop/internal/interface/http/dto"
	"github.com/unibookshop/unibookshop/internal/interface/http/middleware"
	"github.com/unibookshop/unibookshop/pkg/response"
)

// DeliveryHandler 配送单HTTP处理器
type DeliveryHandler struct {
	deliveryUseCase *appdelivery.DeliveryUseCase
}

// NewDeliveryHandler 创建配送处理器
func NewDeliveryHandler(deliveryUseCase *appdelivery.DeliveryUseCase) *DeliveryHandler {
	return &DeliveryHandler{deliveryUseCase: deliveryUseCase}
}

// List 全部配送单（admin）
// @Summary      全部配送单
// @Tags         配送
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "配送单列表"
// @Failure      403 {object} response.Response "没有权限"
// @Router       /api/v1/deliveries [get]
func (h *DeliveryHandler) List(c *gin.Context) {
	deliveries, err := h.deliveryUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, deliveries)
}

// ListMine 我的配送任务（delivery_agent）
// @Summary      我的配送任务
// @Tags         配送
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "配送单列表"
// @Router       /api/v1/deliveries/me [get]
func (h *DeliveryHandler) ListMine(c *gin.Context) {
	deliveries, err := h.deliveryUseCase.ListMine(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, deliveries)
}

// Get 配送单详情
// @Summary      配送单详情
// @Tags         配送
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "配送单ID"
// @Success      200 {object} response.Response "配送单"
// @Failure      403 {object} response.Response "没有权限"
// @Failure      404 {object} response.Response "配送单不存在"
// @Router       /api/v1/deliveries/{id} [get]
func (h *DeliveryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	delivery, err := h.deliveryUseCase.Get(c.Request.Context(), id,
		middleware.MustGetUserID(c), middleware.GetRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, delivery)
}

// Assign 指派配送员（admin）
// @Summary      指派配送员
// @Description  被指派者必须是delivery_agent角色；状态置为assigned
// @Tags         配送
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "配送单ID"
// @Param        request body dto.AssignDeliveryRequest true "配送员"
// @Success      200 {object} response.Response "指派成功"
// @Failure      400 {object} response.Response "指派对象不是配送员"
// @Router       /api/v1/deliveries/{id}/assign [put]
func (h *DeliveryHandler) Assign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.AssignDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	delivery, err := h.deliveryUseCase.Assign(c.Request.Context(), id, req.AgentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, delivery)
}

// Update 更新配送单（admin或被指派的配送员）
// @Summary      更新配送单
// @Description  状态/取件时间/送达时间/备注；缺省字段不修改
// @Tags         配送
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "配送单ID"
// @Param        request body dto.UpdateDeliveryRequest true "更新内容"
// @Success      200 {object} response.Response "更新成功"
// @Failure      400 {object} response.Response "状态值或时间格式不合法"
// @Failure      403 {object} response.Response "没有权限"
// @Router       /api/v1/deliveries/{id} [put]
func (h *DeliveryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	update := appdelivery.UpdateRequest{Status: req.Status, Notes: req.Notes}

	if req.PickupTime != nil {
		t, err := parseLocalTime(*req.PickupTime)
		if err != nil {
			response.ErrorWithCode(c, 40900, "取件时间格式错误")
			return
		}
		update.PickupTime = &t
	}
	if req.DeliveryTime != nil {
		t, err := parseLocalTime(*req.DeliveryTime)
		if err != nil {
			response.ErrorWithCode(c, 40900, "送达时间格式错误")
			return
		}
		update.DeliveryTime = &t
	}

	delivery, err := h.deliveryUseCase.Update(c.Request.Context(), id,
		middleware.MustGetUserID(c), middleware.GetRole(c), update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, delivery)
}

func parseLocalTime(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04:05", s, time.Local)
}
