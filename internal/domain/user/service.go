package user

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Service 用户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（如密码加密、验证）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// Register 用户注册
	Register(ctx context.Context, email, password, nickname string) (*User, error)

	// Login 用户登录
	Login(ctx context.Context, email, password string) (*User, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error

	// HashPassword 生成密码哈希（注册与密码重置共用）
	HashPassword(plainPassword string) (string, error)
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
// 业务规则：
// 1. 邮箱格式校验
// 2. 密码强度校验（8-20位，包含字母和数字）
// 3. 密码bcrypt加密（cost=12，平衡安全性与性能）
// 4. 邮箱唯一性由数据库UNIQUE索引保证（应用层校验有并发窗口）
func (s *service) Register(ctx context.Context, email, password, nickname string) (*User, error) {
	if !isValidEmail(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}

	if len(nickname) < 2 || len(nickname) > 50 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "昵称长度应为2-50个字符")
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := NewUser(email, hashedPassword, nickname)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return user, nil
}

// Login 用户登录
// 业务规则：
// 1. 邮箱必须存在
// 2. 密码必须正确
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err // Repository已转换为ErrUserNotFound
	}

	if err := s.ValidatePassword(user.Password, password); err != nil {
		return nil, err // 返回ErrInvalidPassword
	}

	return user, nil
}

// ValidatePassword 验证密码
// 说明：登录时使用，验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// HashPassword 生成密码哈希
// bcrypt自动加盐，相同密码每次哈希结果不同
func (s *service) HashPassword(plainPassword string) (string, error) {
	if err := validatePasswordStrength(plainPassword); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plainPassword), 12)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

// =========================================
// 辅助函数：业务规则校验
// =========================================

// isValidEmail 邮箱格式校验
// 简单的正则校验，生产环境可使用更严格的RFC 5322标准
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// validatePasswordStrength 密码强度校验
// 规则：8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasLetter || !hasDigit {
		return apperrors.ErrWeakPassword
	}

	return nil
}
