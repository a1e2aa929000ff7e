package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/unibookshop/unibookshop/internal/application/review"
	"github.com/unibookshop/unibookshop/internal/interface/http/dto"
	"github.com/unibookshop/unibookshop/internal/interface/http/middleware"
	"github.com/unibookshop/unibookshop/pkg/response"
)

// ReviewHandler 书评HTTP处理器
// 读公开；写要求登录
type ReviewHandler struct {
	reviewUseCase *appreview.ReviewUseCase
}

// NewReviewHandler 创建书评处理器
func NewReviewHandler(reviewUseCase *appreview.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUseCase: reviewUseCase}
}

// Submit 提交书评
// @Summary      提交书评
// @Description  同一用户对同一本书只有一条书评，重复提交覆盖
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ReviewRequest true "书评"
// @Success      200 {object} response.Response "提交成功"
// @Failure      400 {object} response.Response "评分超出范围"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	review, err := h.reviewUseCase.Submit(c.Request.Context(), middleware.MustGetUserID(c),
		req.BookID, req.Rating, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, review)
}

// ListByBook 某本书的书评
// @Summary      图书书评
// @Description  返回书评列表与汇总（条数、平均分保留1位小数）
// @Tags         书评
// @Produce      json
// @Param        book_id path int true "图书ID"
// @Success      200 {object} response.Response "书评列表与汇总"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/reviews/book/{book_id} [get]
func (h *ReviewHandler) ListByBook(c *gin.Context) {
	bookID, ok := parseBookIDParam(c)
	if !ok {
		return
	}

	result, err := h.reviewUseCase.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
