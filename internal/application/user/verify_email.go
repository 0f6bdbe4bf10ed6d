package user

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// VerifyEmailUseCase 邮箱验证用例
// 令牌一次性消费（Redis GETDEL），过期或已使用返回统一错误
type VerifyEmailUseCase struct {
	userRepo   user.Repository
	tokenStore TokenStore
}

// NewVerifyEmailUseCase 创建邮箱验证用例
func NewVerifyEmailUseCase(userRepo user.Repository, tokenStore TokenStore) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{
		userRepo:   userRepo,
		tokenStore: tokenStore,
	}
}

// Execute 执行验证
func (uc *VerifyEmailUseCase) Execute(ctx context.Context, token string) error {
	userID, err := uc.tokenStore.ConsumeVerificationToken(ctx, token)
	if err != nil {
		return err
	}

	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return nil // 重复验证幂等
	}

	u.MarkEmailVerified()
	return uc.userRepo.Update(ctx, u)
}

// ResendVerificationUseCase 重发验证邮件用例
// 发送频率受限（防骚扰与滥用），超限返回ErrTooManyRequests
type ResendVerificationUseCase struct {
	userRepo   user.Repository
	tokenStore TokenStore
	mailer     MailSender
}

// NewResendVerificationUseCase 创建重发验证邮件用例
func NewResendVerificationUseCase(
	userRepo user.Repository,
	tokenStore TokenStore,
	mailer MailSender,
) *ResendVerificationUseCase {
	return &ResendVerificationUseCase{
		userRepo:   userRepo,
		tokenStore: tokenStore,
		mailer:     mailer,
	}
}

// Execute 执行重发
func (uc *ResendVerificationUseCase) Execute(ctx context.Context, userID uint) error {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return apperrors.New(apperrors.ErrCodeBusinessError, "邮箱已验证，无需重复操作")
	}

	// 频率限制：同一邮箱窗口期内限发
	allowed, err := uc.tokenStore.AllowMailSend(ctx, u.Email)
	if err != nil {
		log.Printf("[verify_email] 频率检查失败 user_id=%d: %v", userID, err)
		// Redis故障时放行，避免阻断正常流程
	} else if !allowed {
		return apperrors.ErrTooManyRequests
	}

	token := uuid.NewString()
	if err := uc.tokenStore.SaveVerificationToken(ctx, token, u.ID, redis.VerificationTokenTTL); err != nil {
		return err
	}
	return uc.mailer.SendVerificationEmail(u.Email, token)
}
