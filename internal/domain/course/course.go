package course

import (
	"context"
	"time"

	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// Course 课程实体
// Code为业务主键（如CSC101），全局唯一
type Course struct {
	ID           uint
	Code         string
	Title        string
	DepartmentID *uint
	Level        string
	Semester     string
	CreatedAt    time.Time
}

// 课程领域错误定义
var (
	ErrCourseNotFound  = apperrors.New(apperrors.ErrCodeCourseNotFound, "课程不存在")
	ErrCourseDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "课程代码已存在")
)

// Repository 课程仓储接口
type Repository interface {
	Create(ctx context.Context, c *Course) error
	FindByID(ctx context.Context, id uint) (*Course, error)
	FindByCode(ctx context.Context, code string) (*Course, error)

	// List 按课程代码升序返回全部课程
	List(ctx context.Context) ([]*Course, error)

	// ListByDepartment 按院系过滤
	ListByDepartment(ctx context.Context, departmentID uint) ([]*Course, error)

	Update(ctx context.Context, c *Course) error
	Delete(ctx context.Context, id uint) error
}
