package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/unibookshop/unibookshop/internal/domain/user"
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// userRepository 用户仓储的MySQL实现
// 设计说明：
// 1. 实现domain层定义的Repository接口（依赖倒置）
// 2. 存储模型UserModel与领域实体User在这里互相转换
// 3. 唯一键冲突翻译为领域错误，调用方不感知MySQL错误码
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			// 邮箱和学号各有唯一索引，按冲突键区分
			if strings.Contains(err.Error(), "matric") {
				return user.ErrMatricDuplicate
			}
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	// 回填自增ID（GORM自动填充）
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// Update 更新用户资料
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	result := getDB(ctx, r.db).Model(&UserModel{}).Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"first_name":    model.FirstName,
			"last_name":     model.LastName,
			"department_id": model.DepartmentID,
			"level":         model.Level,
			"phone":         model.Phone,
			"addr_street":   model.Address.Street,
			"addr_city":     model.Address.City,
			"addr_state":    model.Address.State,
			"addr_country":  model.Address.Country,
			"addr_zip":      model.Address.Zip,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新用户失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// toUserModel 领域实体 -> 存储模型
func toUserModel(u *user.User) *UserModel {
	var matric *string
	if u.MatricNumber != "" {
		m := u.MatricNumber
		matric = &m
	}
	return &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Password:     u.Password,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		MatricNumber: matric,
		DepartmentID: u.DepartmentID,
		Level:        u.Level,
		Phone:        u.Phone,
		Address: AddressColumns{
			Street:  u.Address.Street,
			City:    u.Address.City,
			State:   u.Address.State,
			Country: u.Address.Country,
			Zip:     u.Address.Zip,
		},
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// toUserEntity 存储模型 -> 领域实体
func toUserEntity(m *UserModel) *user.User {
	matric := ""
	if m.MatricNumber != nil {
		matric = *m.MatricNumber
	}
	return &user.User{
		ID:           m.ID,
		Email:        m.Email,
		Password:     m.Password,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		MatricNumber: matric,
		DepartmentID: m.DepartmentID,
		Level:        m.Level,
		Phone:        m.Phone,
		Address: user.Address{
			Street:  m.Address.Street,
			City:    m.Address.City,
			State:   m.Address.State,
			Country: m.Address.Country,
			Zip:     m.Address.Zip,
		},
		Role:      user.Role(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
