package user

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/pkg/jwt"
)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 验证邮箱密码
// 2. 生成JWT Token对
// 3. 保存会话到Redis（会话有效期=Refresh Token有效期）
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间（秒）
}

// UserInfo 用户信息
type UserInfo struct {
	ID            uint   `json:"id"`
	Email         string `json:"email"`
	Nickname      string `json:"nickname"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证邮箱密码（调用领域服务）
	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	// 3. 保存会话到Redis
	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"role":     string(u.Role),
		"login_at": time.Now().Unix(),
	}
	if err := uc.sessionStore.SaveSession(ctx, u.ID, sessionData, uc.jwtManager.RefreshTokenExpire()); err != nil {
		// 会话保存失败不影响登录，只记录日志
		log.Printf("[login] 保存会话失败 user_id=%d: %v", u.ID, err)
	}

	return &LoginResponse{
		User: UserInfo{
			ID:            u.ID,
			Email:         u.Email,
			Nickname:      u.Nickname,
			Role:          string(u.Role),
			EmailVerified: u.EmailVerified,
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, sessionStore SessionStore) *LogoutUseCase {
	return &LogoutUseCase{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// Execute 执行登出
// 删除会话并将Access Token加入黑名单（防止过期前继续使用）
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.jwtManager.AccessTokenExpire())
}
