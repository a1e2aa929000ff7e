package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/unibookshop/unibookshop/internal/application/book"
	"github.com/unibookshop/unibookshop/internal/interface/http/dto"
	"github.com/unibookshop/unibookshop/pkg/response"
)

// BookHandler 图书HTTP处理器
// 读接口公开；写接口的角色门槛由路由上的RequireRoles中间件完成
type BookHandler struct {
	queryUseCase  *appbook.QueryBookUseCase
	manageUseCase *appbook.ManageBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(queryUseCase *appbook.QueryBookUseCase, manageUseCase *appbook.ManageBookUseCase) *BookHandler {
	return &BookHandler{queryUseCase: queryUseCase, manageUseCase: manageUseCase}
}

// List 图书目录
// @Summary      图书目录
// @Description  分页查询在售图书，支持关键词/分类/课程过滤
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        keyword query string false "关键词（书名或作者）"
// @Param        category query string false "分类"
// @Param        course_id query int false "课程ID"
// @Success      200 {object} response.Response "图书列表"
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	books, total, err := h.queryUseCase.List(c.Request.Context(), appbook.ListRequest{
		Page:     query.Page,
		PageSize: query.PageSize,
		Keyword:  query.Keyword,
		Category: query.Category,
		CourseID: query.CourseID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, books, total, query.Page, query.PageSize)
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "图书详情"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	book, err := h.queryUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, book)
}

// Create 上架新书
// @Summary      上架新书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response "创建成功"
// @Failure      403 {object} response.Response "没有权限"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	book, err := h.manageUseCase.Create(c.Request.Context(), toBookInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, book)
}

// Update 更新图书
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response "更新成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	book, err := h.manageUseCase.Update(c.Request.Context(), id, toBookInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, book)
}

// Deactivate 下架图书
// @Summary      下架图书
// @Description  软删除：目录不再展示，历史订单与详情不受影响
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "下架成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.manageUseCase.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func toBookInput(req dto.BookRequest) appbook.BookInput {
	courses := make([]appbook.CourseLinkDTO, 0, len(req.Courses))
	for _, cl := range req.Courses {
		courses = append(courses, appbook.CourseLinkDTO{CourseID: cl.CourseID, IsRequired: cl.IsRequired})
	}
	return appbook.BookInput{
		Title:             req.Title,
		Author:            req.Author,
		ISBN:              req.ISBN,
		Description:       req.Description,
		CoverImageURL:     req.CoverImageURL,
		Price:             req.Price,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		Publisher:         req.Publisher,
		PublicationYear:   req.PublicationYear,
		Edition:           req.Edition,
		Category:          req.Category,
		IsEbook:           req.IsEbook,
		EbookURL:          req.EbookURL,
		Courses:           courses,
	}
}

// parseIDParam 解析路径中的:id；非法时直接写入400响应
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithCode(c, 40900, "ID格式错误")
		return 0, false
	}
	return uint(id), true
}
