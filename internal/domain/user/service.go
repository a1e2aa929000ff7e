package user

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// RegisterInput 注册入参
// MatricNumber/DepartmentID等学籍信息可选，唯一性由数据库索引保证
type RegisterInput struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	MatricNumber string
	DepartmentID *uint
	Level        string
	Phone        string
	Address      Address
}

// Service 用户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（密码加密、校验）
// 2. 依赖Repository接口，不依赖具体实现（依赖倒置）
type Service interface {
	// Register 用户注册（默认student角色）
	Register(ctx context.Context, in RegisterInput) (*User, error)

	// Login 用户登录
	Login(ctx context.Context, email, password string) (*User, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
// 业务规则：
// 1. 邮箱格式校验
// 2. 密码强度校验（8-20位，包含字母和数字）
// 3. 密码bcrypt加密（cost=12）
// 4. 邮箱唯一性由数据库UNIQUE索引保证，Repository转换重复错误
func (s *service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if !isValidEmail(in.Email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}

	if err := validatePasswordStrength(in.Password); err != nil {
		return nil, err
	}

	if in.FirstName == "" || in.LastName == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "姓名不能为空")
	}

	// bcrypt自动加盐；cost=12平衡安全性与性能
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u := NewUser(in.Email, string(hashedPassword), in.FirstName, in.LastName)
	u.MatricNumber = in.MatricNumber
	u.DepartmentID = in.DepartmentID
	u.Level = in.Level
	u.Phone = in.Phone
	u.Address = in.Address

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Login 用户登录
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.ValidatePassword(u.Password, password); err != nil {
		return nil, err
	}

	return u, nil
}

// ValidatePassword 验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// isValidEmail 邮箱格式校验（简化的正则，生产可用RFC 5322）
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// validatePasswordStrength 密码强度校验：8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasLetter || !hasDigit {
		return apperrors.ErrWeakPassword
	}

	return nil
}
