package department

import (
	"context"
	"time"

	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// Department 院系实体
// Name与Code均全局唯一
type Department struct {
	ID        uint
	Name      string
	Code      string
	Faculty   string
	CreatedAt time.Time
}

// 院系领域错误定义
var (
	ErrDepartmentNotFound  = apperrors.New(apperrors.ErrCodeDepartmentNotFound, "院系不存在")
	ErrDepartmentDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "院系名称或代码已存在")
)

// Repository 院系仓储接口
type Repository interface {
	Create(ctx context.Context, d *Department) error
	FindByID(ctx context.Context, id uint) (*Department, error)

	// ExistsByNameOrCode 名称或代码是否已被占用（创建前预检）
	ExistsByNameOrCode(ctx context.Context, name, code string) (bool, error)

	// List 按名称升序返回全部院系
	List(ctx context.Context) ([]*Department, error)

	Update(ctx context.Context, d *Department) error
	Delete(ctx context.Context, id uint) error
}
