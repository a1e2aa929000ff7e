package user

import (
	"context"

	"github.com/unibookshop/unibookshop/internal/domain/user"
)

// ProfileUseCase 个人资料用例（查看/修改自己的资料）
// 邮箱、密码、角色不在修改范围内
type ProfileUseCase struct {
	userRepo user.Repository
}

// NewProfileUseCase 创建个人资料用例
func NewProfileUseCase(userRepo user.Repository) *ProfileUseCase {
	return &ProfileUseCase{userRepo: userRepo}
}

// Get 查看自己的资料
func (uc *ProfileUseCase) Get(ctx context.Context, userID uint) (*UserInfo, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(u)
	return &info, nil
}

// UpdateProfileRequest 修改资料请求
type UpdateProfileRequest struct {
	FirstName    string
	LastName     string
	DepartmentID *uint
	Level        string
	Phone        string
	Address      AddressDTO
}

// Update 修改自己的资料
func (uc *ProfileUseCase) Update(ctx context.Context, userID uint, req UpdateProfileRequest) (*UserInfo, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.DepartmentID = req.DepartmentID
	u.Level = req.Level
	u.Phone = req.Phone
	u.Address = user.Address{
		Street:  req.Address.Street,
		City:    req.Address.City,
		State:   req.Address.State,
		Country: req.Address.Country,
		Zip:     req.Address.Zip,
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	info := toUserInfo(u)
	return &info, nil
}
