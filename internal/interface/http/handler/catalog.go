package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/unibookshop/unibookshop/internal/application/catalog"
	"github.com/unibookshop/unibookshop/internal/interface/http/dto"
	"github.com/unibookshop/unibookshop/pkg/response"
)

// CatalogHandler 课程/院系HTTP处理器
// 公开读、管理员写（路由层RequireRoles(admin)）
type CatalogHandler struct {
	courseUseCase     *catalog.CourseUseCase
	departmentUseCase *catalog.DepartmentUseCase
}

// NewCatalogHandler 创建课程/院系处理器
func NewCatalogHandler(courseUseCase *catalog.CourseUseCase, departmentUseCase *catalog.DepartmentUseCase) *CatalogHandler {
	return &CatalogHandler{courseUseCase: courseUseCase, departmentUseCase: departmentUseCase}
}

// =========================================
// 课程
// =========================================

// ListCourses 课程列表
// @Summary      课程列表
// @Tags         课程
// @Produce      json
// @Param        department_id query int false "按院系过滤"
// @Success      200 {object} response.Response "课程列表"
// @Router       /api/v1/courses [get]
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	var query struct {
		DepartmentID uint `form:"department_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	courses, err := h.courseUseCase.List(c.Request.Context(), query.DepartmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, courses)
}

// GetCourse 课程详情
// @Summary      课程详情
// @Tags         课程
// @Produce      json
// @Param        id path int true "课程ID"
// @Success      200 {object} response.Response "课程详情"
// @Failure      404 {object} response.Response "课程不存在"
// @Router       /api/v1/courses/{id} [get]
func (h *CatalogHandler) GetCourse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	course, err := h.courseUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, course)
}

// CreateCourse 新建课程
// @Summary      新建课程
// @Tags         课程
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CourseRequest true "课程信息"
// @Success      200 {object} response.Response "创建成功"
// @Failure      409 {object} response.Response "课程代码已存在"
// @Router       /api/v1/courses [post]
func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	course, err := h.courseUseCase.Create(c.Request.Context(), catalog.CourseInput{
		Code:         req.Code,
		Title:        req.Title,
		DepartmentID: req.DepartmentID,
		Level:        req.Level,
		Semester:     req.Semester,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, course)
}

// UpdateCourse 更新课程
// @Summary      更新课程
// @Tags         课程
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "课程ID"
// @Param        request body dto.CourseRequest true "课程信息"
// @Success      200 {object} response.Response "更新成功"
// @Router       /api/v1/courses/{id} [put]
func (h *CatalogHandler) UpdateCourse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	course, err := h.courseUseCase.Update(c.Request.Context(), id, catalog.CourseInput{
		Code:         req.Code,
		Title:        req.Title,
		DepartmentID: req.DepartmentID,
		Level:        req.Level,
		Semester:     req.Semester,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, course)
}

// DeleteCourse 删除课程
// @Summary      删除课程
// @Tags         课程
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "课程ID"
// @Success      200 {object} response.Response "删除成功"
// @Router       /api/v1/courses/{id} [delete]
func (h *CatalogHandler) DeleteCourse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.courseUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// =========================================
// 院系
// =========================================

// ListDepartments 院系列表
// @Summary      院系列表
// @Tags         院系
// @Produce      json
// @Success      200 {object} response.Response "院系列表"
// @Router       /api/v1/departments [get]
func (h *CatalogHandler) ListDepartments(c *gin.Context) {
	departments, err := h.departmentUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, departments)
}

// GetDepartment 院系详情
// @Summary      院系详情
// @Tags         院系
// @Produce      json
// @Param        id path int true "院系ID"
// @Success      200 {object} response.Response "院系详情"
// @Failure      404 {object} response.Response "院系不存在"
// @Router       /api/v1/departments/{id} [get]
func (h *CatalogHandler) GetDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	department, err := h.departmentUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, department)
}

// CreateDepartment 新建院系
// @Summary      新建院系
// @Tags         院系
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.DepartmentRequest true "院系信息"
// @Success      200 {object} response.Response "创建成功"
// @Failure      409 {object} response.Response "名称或代码已存在"
// @Router       /api/v1/departments [post]
func (h *CatalogHandler) CreateDepartment(c *gin.Context) {
	var req dto.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	department, err := h.departmentUseCase.Create(c.Request.Context(), catalog.DepartmentInput{
		Name:    req.Name,
		Code:    req.Code,
		Faculty: req.Faculty,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, department)
}

// UpdateDepartment 更新院系
// @Summary      更新院系
// @Tags         院系
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "院系ID"
// @Param        request body dto.DepartmentRequest true "院系信息"
// @Success      200 {object} response.Response "更新成功"
// @Router       /api/v1/departments/{id} [put]
func (h *CatalogHandler) UpdateDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	department, err := h.departmentUseCase.Update(c.Request.Context(), id, catalog.DepartmentInput{
		Name:    req.Name,
		Code:    req.Code,
		Faculty: req.Faculty,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, department)
}

// DeleteDepartment 删除院系
// @Summary      删除院系
// @Tags         院系
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "院系ID"
// @Success      200 {object} response.Response "删除成功"
// @Router       /api/v1/departments/{id} [delete]
func (h *CatalogHandler) DeleteDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.departmentUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
