package user

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/user"
)

// ProfileUseCase 个人资料用例（查看与修改）
type ProfileUseCase struct {
	userRepo user.Repository
}

// NewProfileUseCase 创建个人资料用例
func NewProfileUseCase(userRepo user.Repository) *ProfileUseCase {
	return &ProfileUseCase{userRepo: userRepo}
}

// ProfileResponse 资料响应
type ProfileResponse struct {
	ID            uint   `json:"id"`
	Email         string `json:"email"`
	Nickname      string `json:"nickname"`
	Address       string `json:"address,omitempty"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
	CreatedAt     string `json:"created_at"`
}

// Get 查询资料
func (uc *ProfileUseCase) Get(ctx context.Context, userID uint) (*ProfileResponse, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileResponse{
		ID:            u.ID,
		Email:         u.Email,
		Nickname:      u.Nickname,
		Address:       u.Address,
		Role:          string(u.Role),
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// UpdateProfileRequest 修改资料请求
type UpdateProfileRequest struct {
	Nickname string
	Address  string
}

// Update 修改昵称与默认收货地址
func (uc *ProfileUseCase) Update(ctx context.Context, userID uint, req UpdateProfileRequest) error {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	u.UpdateProfile(req.Nickname, req.Address)
	return uc.userRepo.Update(ctx, u)
}
