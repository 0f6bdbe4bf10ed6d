package user

import (
	"time"
)

// Role 用户角色
type Role string

const (
	RoleUser  Role = "user"  // 普通用户
	RoleAdmin Role = "admin" // 管理员
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是用户聚合的根实体，包含用户的核心属性
// 2. 密码已加密存储（bcrypt），不应该有GetPassword()等方法暴露明文
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID            uint
	Email         string
	Password      string // bcrypt哈希值
	Nickname      string
	Address       string // 默认收货地址
	Role          Role
	EmailVerified bool // 邮箱是否已验证
	Version       int  // 乐观锁版本号
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码；新用户默认普通角色、邮箱未验证
func NewUser(email, hashedPassword, nickname string) *User {
	now := time.Now()
	return &User{
		Email:         email,
		Password:      hashedPassword,
		Nickname:      nickname,
		Role:          RoleUser,
		EmailVerified: false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// MarkEmailVerified 标记邮箱已验证（领域行为）
func (u *User) MarkEmailVerified() {
	u.EmailVerified = true
	u.UpdatedAt = time.Now()
}

// UpdateProfile 更新昵称与收货地址（领域行为）
func (u *User) UpdateProfile(nickname, address string) {
	u.Nickname = nickname
	u.Address = address
	u.UpdatedAt = time.Now()
}
