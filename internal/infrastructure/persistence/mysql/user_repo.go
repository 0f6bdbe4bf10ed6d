package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/user"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// userRepository 用户仓储实现(MySQL)
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.Version = model.Version
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// Update 更新用户信息(最后写入生效)
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	result := getDB(ctx, r.db).Model(&UserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"nickname":       u.Nickname,
			"address":        u.Address,
			"email_verified": u.EmailVerified,
			"version":        gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新用户失败")
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword 更新密码哈希
func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	result := getDB(ctx, r.db).Model(&UserModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password": hashedPassword,
			"version":  gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新密码失败")
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// List 分页查询用户(后台管理)
func (r *userRepository) List(ctx context.Context, params user.ListParams) ([]*user.User, int64, error) {
	var models []UserModel
	var total int64

	query := getDB(ctx, r.db).Model(&UserModel{})
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("email LIKE ? OR nickname LIKE ?", keyword, keyword)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.
		Order("created_at DESC").
		Limit(params.PageSize).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户列表失败")
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, total, nil
}

// Delete 删除用户(软删除)
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&UserModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除用户失败")
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toUserModel 领域实体 → GORM模型
func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		ID:            u.ID,
		Email:         u.Email,
		Password:      u.Password,
		Nickname:      u.Nickname,
		Address:       u.Address,
		Role:          string(u.Role),
		EmailVerified: u.EmailVerified,
		Version:       u.Version,
	}
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:            model.ID,
		Email:         model.Email,
		Password:      model.Password,
		Nickname:      model.Nickname,
		Address:       model.Address,
		Role:          user.Role(model.Role),
		EmailVerified: model.EmailVerified,
		Version:       model.Version,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
