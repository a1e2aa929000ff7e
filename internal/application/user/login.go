package user

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/unibookshop/unibookshop/internal/domain/user"
	"github.com/unibookshop/unibookshop/internal/infrastructure/persistence/redis"
	"github.com/unibookshop/unibookshop/pkg/jwt"
)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 验证邮箱密码（领域服务）
// 2. 生成JWT Token对（角色写入Claims，后续鉴权不再查库）
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService   user.Service
	jwtManager    *jwt.Manager
	sessionStore  *redis.SessionStore
	refreshExpire time.Duration
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	refreshExpire time.Duration,
) *LoginUseCase {
	return &LoginUseCase{
		userService:   userService,
		jwtManager:    jwtManager,
		sessionStore:  sessionStore,
		refreshExpire: refreshExpire,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	// 会话有效期与Refresh Token对齐；保存失败不阻断登录
	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"role":     string(u.Role),
		"login_at": time.Now().Unix(),
		"ip":       req.ClientIP,
	}
	if err := uc.sessionStore.SaveSession(ctx, u.ID, sessionData, uc.refreshExpire); err != nil {
		logrus.WithError(err).WithField("user_id", u.ID).Warn("保存登录会话失败")
	}

	return &LoginResponse{
		User:         toUserInfo(u),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
	accessExpire time.Duration
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore, accessExpire time.Duration) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore, accessExpire: accessExpire}
}

// Execute 执行登出：删除会话并拉黑当前Access Token
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}
	// 黑名单TTL取Access Token有效期，过期后自动清理
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.accessExpire)
}

// RefreshUseCase 刷新Access Token用例
type RefreshUseCase struct {
	jwtManager *jwt.Manager
}

// NewRefreshUseCase 创建刷新用例
func NewRefreshUseCase(jwtManager *jwt.Manager) *RefreshUseCase {
	return &RefreshUseCase{jwtManager: jwtManager}
}

// Execute 用Refresh Token换新的Access Token
func (uc *RefreshUseCase) Execute(ctx context.Context, refreshToken string) (string, error) {
	return uc.jwtManager.RefreshAccessToken(refreshToken)
}

// =========================================
// 应用层DTO
// =========================================

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token有效期（秒）
}
