package dto

// AddressRequest 地址
type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
}

// RegisterRequest 注册请求
// 密码强度（8-20位，含字母与数字）在领域层校验
type RegisterRequest struct {
	Email        string         `json:"email" binding:"required,email"`
	Password     string         `json:"password" binding:"required,min=8,max=20"`
	FirstName    string         `json:"first_name" binding:"required"`
	LastName     string         `json:"last_name" binding:"required"`
	MatricNumber string         `json:"matric_number"`
	DepartmentID *uint          `json:"department_id"`
	Level        string         `json:"level"`
	Phone        string         `json:"phone"`
	Address      AddressRequest `json:"address"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 刷新Token请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest 修改个人资料请求
type UpdateProfileRequest struct {
	FirstName    string         `json:"first_name" binding:"required"`
	LastName     string         `json:"last_name" binding:"required"`
	DepartmentID *uint          `json:"department_id"`
	Level        string         `json:"level"`
	Phone        string         `json:"phone"`
	Address      AddressRequest `json:"address"`
}
