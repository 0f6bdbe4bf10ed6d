package user

import (
	"context"
	"time"
)

// 用例侧窄接口：只声明编排用到的基础设施能力，
// 实现分别由redis.TokenStore、redis.SessionStore、mail.Mailer提供

// TokenStore 一次性令牌存取与发信频率检查
type TokenStore interface {
	SaveVerificationToken(ctx context.Context, token string, userID uint, ttl time.Duration) error
	ConsumeVerificationToken(ctx context.Context, token string) (uint, error)
	SaveResetToken(ctx context.Context, token string, userID uint, ttl time.Duration) error
	ConsumeResetToken(ctx context.Context, token string) (uint, error)
	AllowMailSend(ctx context.Context, email string) (bool, error)
}

// MailSender 账户相关通知邮件
type MailSender interface {
	SendVerificationEmail(to, token string) error
	SendPasswordResetEmail(to, token string) error
}

// SessionStore 会话与访问令牌黑名单
type SessionStore interface {
	SaveSession(ctx context.Context, userID uint, sessionData map[string]interface{}, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}
