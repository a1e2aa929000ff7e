package handler

import (
	"github.com/gin-gonic/gin"

	appwishlist "github.com/unibookshop/unibookshop/internal/application/wishlist"
	"github.com/unibookshop/unibookshop/internal/interface/http/dto"
	"github.com/unibookshop/unibookshop/internal/interface/http/middleware"
	"github.com/unibookshop/unibookshop/pkg/response"
)

// WishlistHandler 心愿单HTTP处理器（全部接口要求登录）
type WishlistHandler struct {
	wishlistUseCase *appwishlist.WishlistUseCase
}

// NewWishlistHandler 创建心愿单处理器
func NewWishlistHandler(wishlistUseCase *appwishlist.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{wishlistUseCase: wishlistUseCase}
}

// Add 收藏图书
// @Summary      收藏图书
// @Description  重复收藏只更新到货提醒开关
// @Tags         心愿单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.WishlistRequest true "图书与提醒开关"
// @Success      200 {object} response.Response "收藏成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/wishlist [post]
func (h *WishlistHandler) Add(c *gin.Context) {
	var req dto.WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	entry, err := h.wishlistUseCase.Add(c.Request.Context(), middleware.MustGetUserID(c),
		req.BookID, req.NotifyWhenAvailable)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entry)
}

// List 我的心愿单
// @Summary      我的心愿单
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "心愿单"
// @Router       /api/v1/wishlist [get]
func (h *WishlistHandler) List(c *gin.Context) {
	entries, err := h.wishlistUseCase.List(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}

// Remove 取消收藏
// @Summary      取消收藏
// @Description  幂等：条目不存在也返回成功
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Param        book_id path int true "图书ID"
// @Success      200 {object} response.Response "已取消"
// @Router       /api/v1/wishlist/{book_id} [delete]
func (h *WishlistHandler) Remove(c *gin.Context) {
	bookID, ok := parseBookIDParam(c)
	if !ok {
		return
	}

	if err := h.wishlistUseCase.Remove(c.Request.Context(), middleware.MustGetUserID(c), bookID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
