package user

import (
	"context"
)

// Repository 用户仓储接口（由infrastructure层实现）
type Repository interface {
	// Create 创建用户（邮箱/学号唯一性由数据库索引保证）
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 根据邮箱查找用户
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update 更新个人资料（不含邮箱/密码/角色）
	Update(ctx context.Context, user *User) error
}
