package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcart "github.com/unibookshop/unibookshop/internal/application/cart"
	"github.com/unibookshop/unibookshop/internal/interface/http/dto"
	"github.com/unibookshop/unibookshop/internal/interface/http/middleware"
	"github.com/unibookshop/unibookshop/pkg/response"
)

// CartHandler 购物车HTTP处理器（全部接口要求登录）
type CartHandler struct {
	cartUseCase *appcart.CartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartUseCase *appcart.CartUseCase) *CartHandler {
	return &CartHandler{cartUseCase: cartUseCase}
}

// Get 我的购物车
// @Summary      我的购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "购物车"
// @Router       /api/v1/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cartUseCase.Get(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cart)
}

// AddItem 加入购物车（合并数量）
// @Summary      加入购物车
// @Description  已在车中的图书数量累加（可为负）；合并后数量归零删行，且不能超过当前库存
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CartItemRequest true "图书与数量"
// @Success      200 {object} response.Response "购物车"
// @Failure      400 {object} response.Response "库存不足"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	cart, err := h.cartUseCase.AddItem(c.Request.Context(), middleware.MustGetUserID(c), req.BookID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cart)
}

// UpdateItem 设置行项数量
// @Summary      更新购物车行项
// @Description  覆盖语义；数量0等价于删除行项
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        book_id path int true "图书ID"
// @Param        request body dto.CartItemRequest true "数量"
// @Success      200 {object} response.Response "购物车"
// @Router       /api/v1/cart/items/{book_id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	bookID, ok := parseBookIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	cart, err := h.cartUseCase.UpdateItem(c.Request.Context(), middleware.MustGetUserID(c), bookID, *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cart)
}

// RemoveItem 删除行项
// @Summary      移出购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        book_id path int true "图书ID"
// @Success      200 {object} response.Response "购物车"
// @Router       /api/v1/cart/items/{book_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	bookID, ok := parseBookIDParam(c)
	if !ok {
		return
	}

	cart, err := h.cartUseCase.RemoveItem(c.Request.Context(), middleware.MustGetUserID(c), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cart)
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "已清空"
// @Router       /api/v1/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartUseCase.Clear(c.Request.Context(), middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// parseBookIDParam 解析路径中的:book_id
func parseBookIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("book_id"), 10, 32)
	if err != nil {
		response.ErrorWithCode(c, 40900, "图书ID格式错误")
		return 0, false
	}
	return uint(id), true
}
