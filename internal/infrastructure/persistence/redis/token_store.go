package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 令牌有效期与邮件频率限制参数
const (
	// VerificationTokenTTL 邮箱验证令牌有效期
	VerificationTokenTTL = 24 * time.Hour

	// ResetTokenTTL 密码重置令牌有效期
	ResetTokenTTL = 30 * time.Minute

	// mailSendLimit 窗口期内同一邮箱的最大发信次数
	mailSendLimit = 3

	// mailSendWindow 固定窗口长度
	mailSendWindow = time.Hour
)

// TokenStore 一次性令牌存储
// 设计说明：
// 1. 邮箱验证/密码重置令牌value为用户ID，带TTL自动过期
// 2. 消费使用GETDEL原子取走，天然防止令牌复用
// 3. 发信频率限制使用固定窗口计数（INCR+EXPIRE）
// Key设计：verify:{token}、reset:{token}、mail_rate:{email}
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore 创建令牌存储
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// SaveVerificationToken 保存邮箱验证令牌
func (s *TokenStore) SaveVerificationToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	key := fmt.Sprintf("verify:%s", token)
	if err := s.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return apperrors.Wrap(err, "保存验证令牌失败")
	}
	return nil
}

// ConsumeVerificationToken 消费邮箱验证令牌（一次性）
// 不存在/已过期/已使用统一返回ErrTokenUsed
func (s *TokenStore) ConsumeVerificationToken(ctx context.Context, token string) (uint, error) {
	return s.consume(ctx, fmt.Sprintf("verify:%s", token))
}

// SaveResetToken 保存密码重置令牌
func (s *TokenStore) SaveResetToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	key := fmt.Sprintf("reset:%s", token)
	if err := s.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return apperrors.Wrap(err, "保存重置令牌失败")
	}
	return nil
}

// ConsumeResetToken 消费密码重置令牌（一次性）
func (s *TokenStore) ConsumeResetToken(ctx context.Context, token string) (uint, error) {
	return s.consume(ctx, fmt.Sprintf("reset:%s", token))
}

// consume GETDEL原子取走令牌并解析用户ID
func (s *TokenStore) consume(ctx context.Context, key string) (uint, error) {
	val, err := s.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, apperrors.ErrTokenUsed
	}
	if err != nil {
		return 0, apperrors.Wrap(err, "读取令牌失败")
	}

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, apperrors.Wrap(err, "令牌数据损坏")
	}
	return uint(userID), nil
}

// AllowMailSend 发信频率检查（固定窗口计数）
// 返回false表示窗口期内已达上限
func (s *TokenStore) AllowMailSend(ctx context.Context, email string) (bool, error) {
	key := fmt.Sprintf("mail_rate:%s", email)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "频率计数失败")
	}
	// 窗口首次计数时设置过期
	if count == 1 {
		if err := s.client.Expire(ctx, key, mailSendWindow).Err(); err != nil {
			return false, apperrors.Wrap(err, "设置频率窗口失败")
		}
	}
	return count <= mailSendLimit, nil
}
