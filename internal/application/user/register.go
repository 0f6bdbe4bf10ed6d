package user

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
)

// RegisterUseCase 用户注册用例
// 设计说明：
// 1. Application层负责用例编排，协调领域服务与基础设施
// 2. 注册成功后生成验证令牌并异步发送验证邮件，
//    邮件失败不影响注册结果（用户可稍后重新申请）
type RegisterUseCase struct {
	userService user.Service
	tokenStore  TokenStore
	mailer      MailSender
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(
	userService user.Service,
	tokenStore TokenStore,
	mailer MailSender,
) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		tokenStore:  tokenStore,
		mailer:      mailer,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
	Nickname string
}

// RegisterResponse 注册响应
// 说明：不返回密码字段（安全考虑）
type RegisterResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	// 1. 调用领域服务执行注册
	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.Nickname)
	if err != nil {
		return nil, err
	}

	// 2. 发送验证邮件（尽力而为）
	uc.sendVerification(ctx, u)

	return &RegisterResponse{
		ID:       u.ID,
		Email:    u.Email,
		Nickname: u.Nickname,
	}, nil
}

// sendVerification 生成验证令牌并投递邮件
func (uc *RegisterUseCase) sendVerification(ctx context.Context, u *user.User) {
	token := uuid.NewString()
	if err := uc.tokenStore.SaveVerificationToken(ctx, token, u.ID, redis.VerificationTokenTTL); err != nil {
		log.Printf("[register] 保存验证令牌失败 user_id=%d: %v", u.ID, err)
		return
	}
	if err := uc.mailer.SendVerificationEmail(u.Email, token); err != nil {
		log.Printf("[register] 验证邮件入队失败 user_id=%d: %v", u.ID, err)
	}
}
