package user

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// RequestPasswordResetUseCase 申请密码重置用例
// 安全说明：
// 1. 邮箱不存在时同样返回成功，防止邮箱枚举探测
// 2. 发送频率受限，超限返回ErrTooManyRequests
type RequestPasswordResetUseCase struct {
	userRepo   user.Repository
	tokenStore TokenStore
	mailer     MailSender
}

// NewRequestPasswordResetUseCase 创建申请重置用例
func NewRequestPasswordResetUseCase(
	userRepo user.Repository,
	tokenStore TokenStore,
	mailer MailSender,
) *RequestPasswordResetUseCase {
	return &RequestPasswordResetUseCase{
		userRepo:   userRepo,
		tokenStore: tokenStore,
		mailer:     mailer,
	}
}

// Execute 执行申请
// 无论邮箱是否注册都返回nil（调用方展示统一成功提示）
func (uc *RequestPasswordResetUseCase) Execute(ctx context.Context, email string) error {
	allowed, err := uc.tokenStore.AllowMailSend(ctx, email)
	if err != nil {
		log.Printf("[reset_password] 频率检查失败 email=%s: %v", email, err)
	} else if !allowed {
		return apperrors.ErrTooManyRequests
	}

	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeUserNotFound) {
			// 吞掉not found：响应与成功路径不可区分
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := uc.tokenStore.SaveResetToken(ctx, token, u.ID, redis.ResetTokenTTL); err != nil {
		return err
	}
	if err := uc.mailer.SendPasswordResetEmail(u.Email, token); err != nil {
		log.Printf("[reset_password] 重置邮件入队失败 user_id=%d: %v", u.ID, err)
	}
	return nil
}

// ConfirmPasswordResetUseCase 确认密码重置用例
// 令牌一次性消费，新密码走领域服务的强度校验与加密
type ConfirmPasswordResetUseCase struct {
	userRepo    user.Repository
	userService user.Service
	tokenStore  TokenStore
	sessions    SessionStore
}

// NewConfirmPasswordResetUseCase 创建确认重置用例
func NewConfirmPasswordResetUseCase(
	userRepo user.Repository,
	userService user.Service,
	tokenStore TokenStore,
	sessions SessionStore,
) *ConfirmPasswordResetUseCase {
	return &ConfirmPasswordResetUseCase{
		userRepo:    userRepo,
		userService: userService,
		tokenStore:  tokenStore,
		sessions:    sessions,
	}
}

// Execute 执行重置
func (uc *ConfirmPasswordResetUseCase) Execute(ctx context.Context, token, newPassword string) error {
	userID, err := uc.tokenStore.ConsumeResetToken(ctx, token)
	if err != nil {
		return err
	}

	hashed, err := uc.userService.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := uc.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	// 密码已变更，强制所有已登录会话下线
	if err := uc.sessions.DeleteSession(ctx, userID); err != nil {
		log.Printf("[reset_password] 清理会话失败 user_id=%d: %v", userID, err)
	}
	return nil
}
