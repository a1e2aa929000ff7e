package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// fakeRepo 内存用户仓储桩
type fakeRepo struct {
	users  map[string]*User // email → user
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User), nextID: 1}
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.users[u.Email]; ok {
		return apperrors.ErrEmailDuplicate
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.Email] = u
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (r *fakeRepo) Update(ctx context.Context, u *User) error {
	r.users[u.Email] = u
	return nil
}

func validInput() RegisterInput {
	return RegisterInput{
		Email:     "ada@unibookshop.edu.ng",
		Password:  "passw0rd123",
		FirstName: "Ada",
		LastName:  "Obi",
	}
}

// TestRegister 测试注册
func TestRegister(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	assert.Equal(t, RoleStudent, u.Role, "新用户默认是student")
	assert.NotEqual(t, "passw0rd123", u.Password, "数据库里不能存明文密码")
	assert.NotZero(t, u.ID)
	assert.Equal(t, "Ada Obi", u.FullName())
}

// TestRegisterValidation 测试注册参数校验
func TestRegisterValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	t.Run("非法邮箱", func(t *testing.T) {
		in := validInput()
		in.Email = "not-an-email"
		_, err := svc.Register(ctx, in)
		assert.Error(t, err)
	})

	t.Run("密码太短", func(t *testing.T) {
		in := validInput()
		in.Password = "abc1"
		_, err := svc.Register(ctx, in)
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	})

	t.Run("纯数字密码", func(t *testing.T) {
		in := validInput()
		in.Password = "1234567890"
		_, err := svc.Register(ctx, in)
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	})

	t.Run("重复邮箱", func(t *testing.T) {
		_, err := svc.Register(ctx, validInput())
		require.NoError(t, err)
		_, err = svc.Register(ctx, validInput())
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})
}

// TestLogin 测试登录
func TestLogin(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	t.Run("正确密码", func(t *testing.T) {
		u, err := svc.Login(ctx, "ada@unibookshop.edu.ng", "passw0rd123")
		require.NoError(t, err)
		assert.Equal(t, "ada@unibookshop.edu.ng", u.Email)
	})

	t.Run("错误密码", func(t *testing.T) {
		_, err := svc.Login(ctx, "ada@unibookshop.edu.ng", "wrongpass1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@unibookshop.edu.ng", "passw0rd123")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

// TestRoleIsValid 角色枚举校验
func TestRoleIsValid(t *testing.T) {
	for _, r := range []Role{RoleStudent, RoleAdmin, RoleCashier, RoleInventoryManager, RoleDeliveryAgent} {
		assert.True(t, r.IsValid(), "%s应该是合法角色", r)
	}
	assert.False(t, Role("superuser").IsValid())
}
