package admin

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/user"
)

// ManageUsersUseCase 用户管理用例（后台）
type ManageUsersUseCase struct {
	userRepo user.Repository
}

// NewManageUsersUseCase 创建用户管理用例
func NewManageUsersUseCase(userRepo user.Repository) *ManageUsersUseCase {
	return &ManageUsersUseCase{userRepo: userRepo}
}

// UserRow 用户列表行
type UserRow struct {
	ID            uint   `json:"id"`
	Email         string `json:"email"`
	Nickname      string `json:"nickname"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
	CreatedAt     string `json:"created_at"`
}

// List 分页查询用户（支持邮箱/昵称关键字）
func (uc *ManageUsersUseCase) List(ctx context.Context, page, pageSize int, keyword string) ([]UserRow, int64, error) {
	users, total, err := uc.userRepo.List(ctx, user.ListParams{
		Page:     page,
		PageSize: pageSize,
		Keyword:  keyword,
	})
	if err != nil {
		return nil, 0, err
	}

	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{
			ID:            u.ID,
			Email:         u.Email,
			Nickname:      u.Nickname,
			Role:          string(u.Role),
			EmailVerified: u.EmailVerified,
			CreatedAt:     u.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rows, total, nil
}

// Delete 删除用户（软删除）
func (uc *ManageUsersUseCase) Delete(ctx context.Context, id uint) error {
	if _, err := uc.userRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return uc.userRepo.Delete(ctx, id)
}
