package catalog

import (
	"context"

	"github.com/unibookshop/unibookshop/internal/domain/course"
)

// CourseUseCase 课程管理用例
// 公开读、管理员写；课程代码唯一性由数据库索引兜底
type CourseUseCase struct {
	courseRepo course.Repository
}

// NewCourseUseCase 创建课程用例
func NewCourseUseCase(courseRepo course.Repository) *CourseUseCase {
	return &CourseUseCase{courseRepo: courseRepo}
}

// CourseInput 课程写入字段
type CourseInput struct {
	Code         string
	Title        string
	DepartmentID *uint
	Level        string
	Semester     string
}

// CourseDTO 课程
type CourseDTO struct {
	ID           uint   `json:"id"`
	Code         string `json:"code"`
	Title        string `json:"title"`
	DepartmentID *uint  `json:"department_id,omitempty"`
	Level        string `json:"level,omitempty"`
	Semester     string `json:"semester,omitempty"`
}

// Create 新建课程
func (uc *CourseUseCase) Create(ctx context.Context, in CourseInput) (*CourseDTO, error) {
	c := &course.Course{
		Code:         in.Code,
		Title:        in.Title,
		DepartmentID: in.DepartmentID,
		Level:        in.Level,
		Semester:     in.Semester,
	}
	if err := uc.courseRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	dto := toCourseDTO(c)
	return &dto, nil
}

// Get 课程详情
func (uc *CourseUseCase) Get(ctx context.Context, id uint) (*CourseDTO, error) {
	c, err := uc.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toCourseDTO(c)
	return &dto, nil
}

// List 全部课程（departmentID非0时按院系过滤）
func (uc *CourseUseCase) List(ctx context.Context, departmentID uint) ([]CourseDTO, error) {
	var (
		courses []*course.Course
		err     error
	)
	if departmentID != 0 {
		courses, err = uc.courseRepo.ListByDepartment(ctx, departmentID)
	} else {
		courses, err = uc.courseRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]CourseDTO, 0, len(courses))
	for _, c := range courses {
		out = append(out, toCourseDTO(c))
	}
	return out, nil
}

// Update 更新课程
func (uc *CourseUseCase) Update(ctx context.Context, id uint, in CourseInput) (*CourseDTO, error) {
	c, err := uc.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Code = in.Code
	c.Title = in.Title
	c.DepartmentID = in.DepartmentID
	c.Level = in.Level
	c.Semester = in.Semester

	if err := uc.courseRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	dto := toCourseDTO(c)
	return &dto, nil
}

// Delete 删除课程
func (uc *CourseUseCase) Delete(ctx context.Context, id uint) error {
	return uc.courseRepo.Delete(ctx, id)
}

func toCourseDTO(c *course.Course) CourseDTO {
	return CourseDTO{
		ID:           c.ID,
		Code:         c.Code,
		Title:        c.Title,
		DepartmentID: c.DepartmentID,
		Level:        c.Level,
		Semester:     c.Semester,
	}
}
