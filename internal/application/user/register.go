package user

import (
	"context"

	"github.com/unibookshop/unibookshop/internal/domain/user"
)

// RegisterUseCase 用户注册用例
// 设计说明：
// 1. Application层负责用例编排；注册规则（邮箱/密码/唯一性）在领域服务里
// 2. 对外永远注册为student——staff角色只能由管理员后台指定，
//    不存在"注册成管理员"的路径
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	u, err := uc.userService.Register(ctx, user.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MatricNumber: req.MatricNumber,
		DepartmentID: req.DepartmentID,
		Level:        req.Level,
		Phone:        req.Phone,
		Address: user.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			Country: req.Address.Country,
			Zip:     req.Address.Zip,
		},
	})
	if err != nil {
		return nil, err
	}

	info := toUserInfo(u)
	return &info, nil
}

// =========================================
// 应用层DTO
// =========================================

// AddressDTO 地址
type AddressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	MatricNumber string
	DepartmentID *uint
	Level        string
	Phone        string
	Address      AddressDTO
}

// UserInfo 用户信息（不含密码）
type UserInfo struct {
	ID           uint       `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	MatricNumber string     `json:"matric_number,omitempty"`
	DepartmentID *uint      `json:"department_id,omitempty"`
	Level        string     `json:"level,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Address      AddressDTO `json:"address"`
	Role         string     `json:"role"`
}

func toUserInfo(u *user.User) UserInfo {
	return UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		MatricNumber: u.MatricNumber,
		DepartmentID: u.DepartmentID,
		Level:        u.Level,
		Phone:        u.Phone,
		Address: AddressDTO{
			Street:  u.Address.Street,
			City:    u.Address.City,
			State:   u.Address.State,
			Country: u.Address.Country,
			Zip:     u.Address.Zip,
		},
		Role: string(u.Role),
	}
}
