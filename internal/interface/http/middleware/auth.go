package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/response"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token并验证签名与有效期
// 2. 检查Token黑名单（登出后的Token立即失效）
// 3. 将用户信息注入Context供后续Handler使用
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			c.Abort()
			return
		}

		// 先查黑名单再验签，已登出的Token直接拒绝
		isBlacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.ErrorWithCode(c, 50000, "验证Token失败")
			c.Abort()
			return
		}
		if isBlacklisted {
			response.ErrorWithCode(c, 40102, "Token已失效，请重新登录")
			c.Abort()
			return
		}

		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		injectClaims(c, claims, tokenString)
		c.Next()
	}
}

// RequireAdmin 要求管理员角色
// 必须在RequireAuth之后使用（依赖Context中的role）
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != "admin" {
			response.ErrorWithCode(c, 40104, "无权限访问")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth 可选登录
// 有Token则验证并注入用户信息，没有则作为匿名用户继续
// 用于公开但登录后展示个性化数据的接口（如评价列表的"我的表态"）
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString := parts[1]
			isBlacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
			if err == nil && !isBlacklisted {
				if claims, err := m.jwtManager.ParseToken(tokenString); err == nil {
					injectClaims(c, claims, tokenString)
				}
			}
		}

		c.Next()
	}
}

// extractToken 解析Authorization: Bearer <token>
// 格式不合法时已写入错误响应，调用方只需Abort
func extractToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.ErrorWithCode(c, 40100, "请先登录")
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.ErrorWithCode(c, 40101, "Token格式错误")
		return "", false
	}
	return parts[1], true
}

func injectClaims(c *gin.Context, claims *jwt.Claims, tokenString string) {
	c.Set("user_id", claims.UserID)
	c.Set("email", claims.Email)
	c.Set("role", claims.Role)
	c.Set("access_token", tokenString)
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 从Context获取当前登录用户ID，0表示未登录
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get("user_id"); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetEmail 从Context获取当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	if email, exists := c.Get("email"); exists {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

// GetRole 从Context获取当前登录用户角色
func GetRole(c *gin.Context) string {
	if role, exists := c.Get("role"); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

// GetAccessToken 从Context获取原始Token（登出加黑名单用）
func GetAccessToken(c *gin.Context) string {
	if token, exists := c.Get("access_token"); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}

// IsAdmin 当前登录用户是否为管理员
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == "admin"
}

// MustGetUserID 从Context获取用户ID（不存在则panic）
// 仅在已经通过RequireAuth中间件的Handler中使用
func MustGetUserID(c *gin.Context) uint {
	userID := GetUserID(c)
	if userID == 0 {
		panic("user_id not found in context")
	}
	return userID
}
