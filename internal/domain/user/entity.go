package user

import (
	"time"
)

// Role 用户角色
// 设计说明：角色写入JWT Claims，接口层按角色放行，
// 领域层只在必要时（如配送单归属）二次校验
type Role string

const (
	RoleStudent          Role = "student"           // 学生（默认角色）
	RoleAdmin            Role = "admin"             // 管理员
	RoleCashier          Role = "cashier"           // 收银员
	RoleInventoryManager Role = "inventory_manager" // 库存管理员
	RoleDeliveryAgent    Role = "delivery_agent"    // 配送员
)

// IsValid 校验角色值是否合法
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleCashier, RoleInventoryManager, RoleDeliveryAgent:
		return true
	}
	return false
}

// Address 收货/联系地址（值对象）
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
}

// User 用户实体（聚合根）
// 1. 密码为bcrypt哈希，不暴露明文
// 2. MatricNumber学号可选，存在时全局唯一
// 3. 领域实体不带GORM tag，由infrastructure层映射
type User struct {
	ID           uint
	Email        string
	Password     string // bcrypt哈希值
	FirstName    string
	LastName     string
	MatricNumber string
	DepartmentID *uint
	Level        string
	Phone        string
	Address      Address
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码；角色默认student
func NewUser(email, hashedPassword, firstName, lastName string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		Role:      RoleStudent,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FullName 返回姓名
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
