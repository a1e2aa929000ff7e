package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/unibookshop/unibookshop/internal/domain/department"
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// departmentRepository 院系仓储的MySQL实现
type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository 创建院系仓储
func NewDepartmentRepository(db *gorm.DB) department.Repository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, d *department.Department) error {
	model := toDepartmentModel(d)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return department.ErrDepartmentDuplicate
		}
		return apperrors.Wrap(err, "创建院系失败")
	}
	d.ID = model.ID
	d.CreatedAt = model.CreatedAt
	return nil
}

func (r *departmentRepository) FindByID(ctx context.Context, id uint) (*department.Department, error) {
	var model DepartmentModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, department.ErrDepartmentNotFound
		}
		return nil, apperrors.Wrap(err, "查询院系失败")
	}
	return toDepartmentEntity(&model), nil
}

func (r *departmentRepository) ExistsByNameOrCode(ctx context.Context, name, code string) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&DepartmentModel{}).
		Where("name = ? OR code = ?", name, code).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询院系失败")
	}
	return count > 0, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*department.Department, error) {
	var models []DepartmentModel
	if err := getDB(ctx, r.db).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询院系列表失败")
	}
	out := make([]*department.Department, 0, len(models))
	for i := range models {
		out = append(out, toDepartmentEntity(&models[i]))
	}
	return out, nil
}

func (r *departmentRepository) Update(ctx context.Context, d *department.Department) error {
	result := getDB(ctx, r.db).Model(&DepartmentModel{}).Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"name":    d.Name,
			"code":    d.Code,
			"faculty": d.Faculty,
		})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return department.ErrDepartmentDuplicate
		}
		return apperrors.Wrap(result.Error, "更新院系失败")
	}
	if result.RowsAffected == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&DepartmentModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除院系失败")
	}
	if result.RowsAffected == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

func toDepartmentModel(d *department.Department) *DepartmentModel {
	return &DepartmentModel{
		ID:        d.ID,
		Name:      d.Name,
		Code:      d.Code,
		Faculty:   d.Faculty,
		CreatedAt: d.CreatedAt,
	}
}

func toDepartmentEntity(m *DepartmentModel) *department.Department {
	return &department.Department{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		Faculty:   m.Faculty,
		CreatedAt: m.CreatedAt,
	}
}
