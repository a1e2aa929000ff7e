package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/unibookshop/unibookshop/internal/domain/course"
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// courseRepository 课程仓储的MySQL实现
type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository 创建课程仓储
func NewCourseRepository(db *gorm.DB) course.Repository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, c *course.Course) error {
	model := toCourseModel(c)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return course.ErrCourseDuplicate
		}
		return apperrors.Wrap(err, "创建课程失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

func (r *courseRepository) FindByID(ctx context.Context, id uint) (*course.Course, error) {
	var model CourseModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, course.ErrCourseNotFound
		}
		return nil, apperrors.Wrap(err, "查询课程失败")
	}
	return toCourseEntity(&model), nil
}

func (r *courseRepository) FindByCode(ctx context.Context, code string) (*course.Course, error) {
	var model CourseModel
	err := getDB(ctx, r.db).Where("code = ?", code).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, course.ErrCourseNotFound
		}
		return nil, apperrors.Wrap(err, "查询课程失败")
	}
	return toCourseEntity(&model), nil
}

func (r *courseRepository) List(ctx context.Context) ([]*course.Course, error) {
	var models []CourseModel
	if err := getDB(ctx, r.db).Order("code ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询课程列表失败")
	}
	return toCourseEntities(models), nil
}

func (r *courseRepository) ListByDepartment(ctx context.Context, departmentID uint) ([]*course.Course, error) {
	var models []CourseModel
	err := getDB(ctx, r.db).Where("department_id = ?", departmentID).
		Order("code ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询课程列表失败")
	}
	return toCourseEntities(models), nil
}

func (r *courseRepository) Update(ctx context.Context, c *course.Course) error {
	result := getDB(ctx, r.db).Model(&CourseModel{}).Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"code":          c.Code,
			"title":         c.Title,
			"department_id": c.DepartmentID,
			"level":         c.Level,
			"semester":      c.Semester,
		})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return course.ErrCourseDuplicate
		}
		return apperrors.Wrap(result.Error, "更新课程失败")
	}
	if result.RowsAffected == 0 {
		return course.ErrCourseNotFound
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&CourseModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除课程失败")
	}
	if result.RowsAffected == 0 {
		return course.ErrCourseNotFound
	}
	return nil
}

func toCourseModel(c *course.Course) *CourseModel {
	return &CourseModel{
		ID:           c.ID,
		Code:         c.Code,
		Title:        c.Title,
		DepartmentID: c.DepartmentID,
		Level:        c.Level,
		Semester:     c.Semester,
		CreatedAt:    c.CreatedAt,
	}
}

func toCourseEntity(m *CourseModel) *course.Course {
	return &course.Course{
		ID:           m.ID,
		Code:         m.Code,
		Title:        m.Title,
		DepartmentID: m.DepartmentID,
		Level:        m.Level,
		Semester:     m.Semester,
		CreatedAt:    m.CreatedAt,
	}
}

func toCourseEntities(models []CourseModel) []*course.Course {
	out := make([]*course.Course, 0, len(models))
	for i := range models {
		out = append(out, toCourseEntity(&models[i]))
	}
	return out
}
