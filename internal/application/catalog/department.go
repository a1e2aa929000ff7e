package catalog

import (
	"context"

	"github.com/unibookshop/unibookshop/internal/domain/department"
)

// DepartmentUseCase 院系管理用例
type DepartmentUseCase struct {
	departmentRepo department.Repository
}

// NewDepartmentUseCase 创建院系用例
func NewDepartmentUseCase(departmentRepo department.Repository) *DepartmentUseCase {
	return &DepartmentUseCase{departmentRepo: departmentRepo}
}

// DepartmentInput 院系写入字段
type DepartmentInput struct {
	Name    string
	Code    string
	Faculty string
}

// DepartmentDTO 院系
type DepartmentDTO struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Faculty string `json:"faculty,omitempty"`
}

// Create 新建院系
// 先预检名称/代码占用（友好报错），唯一索引兜底并发竞态
func (uc *DepartmentUseCase) Create(ctx context.Context, in DepartmentInput) (*DepartmentDTO, error) {
	exists, err := uc.departmentRepo.ExistsByNameOrCode(ctx, in.Name, in.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, department.ErrDepartmentDuplicate
	}

	d := &department.Department{Name: in.Name, Code: in.Code, Faculty: in.Faculty}
	if err := uc.departmentRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	dto := toDepartmentDTO(d)
	return &dto, nil
}

// Get 院系详情
func (uc *DepartmentUseCase) Get(ctx context.Context, id uint) (*DepartmentDTO, error) {
	d, err := uc.departmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDepartmentDTO(d)
	return &dto, nil
}

// List 全部院系
func (uc *DepartmentUseCase) List(ctx context.Context) ([]DepartmentDTO, error) {
	departments, err := uc.departmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DepartmentDTO, 0, len(departments))
	for _, d := range departments {
		out = append(out, toDepartmentDTO(d))
	}
	return out, nil
}

// Update 更新院系
func (uc *DepartmentUseCase) Update(ctx context.Context, id uint, in DepartmentInput) (*DepartmentDTO, error) {
	d, err := uc.departmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.Name = in.Name
	d.Code = in.Code
	d.Faculty = in.Faculty

	if err := uc.departmentRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	dto := toDepartmentDTO(d)
	return &dto, nil
}

// Delete 删除院系
func (uc *DepartmentUseCase) Delete(ctx context.Context, id uint) error {
	return uc.departmentRepo.Delete(ctx, id)
}

func toDepartmentDTO(d *department.Department) DepartmentDTO {
	return DepartmentDTO{
		ID:      d.ID,
		Name:    d.Name,
		Code:    d.Code,
		Faculty: d.Faculty,
	}
}
