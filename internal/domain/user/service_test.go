package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

type stubRepo struct {
	byEmail map[string]*User
	created *User
}

func (r *stubRepo) Create(ctx context.Context, u *User) error {
	r.created = u
	return nil
}

func (r *stubRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (r *stubRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *stubRepo) Update(ctx context.Context, u *User) error { return nil }

func (r *stubRepo) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	return nil
}

func (r *stubRepo) List(ctx context.Context, params ListParams) ([]*User, int64, error) {
	return nil, 0, nil
}

func (r *stubRepo) Delete(ctx context.Context, id uint) error { return nil }

func TestRegister_Validation(t *testing.T) {
	svc := NewService(&stubRepo{})
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		nickname string
	}{
		{"邮箱格式错误", "not-an-email", "passw0rd", "小安"},
		{"昵称过短", "an@example.com", "passw0rd", "a"},
		{"密码过短", "an@example.com", "p0", "小安"},
		{"密码无数字", "an@example.com", "password", "小安"},
		{"密码无字母", "an@example.com", "12345678", "小安"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password, tt.nickname)
			assert.Error(t, err)
		})
	}
}

func TestRegister_Success(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), "an@example.com", "passw0rd", "小安")
	require.NoError(t, err)

	// 新用户默认普通角色、未验证,密码存哈希
	assert.Equal(t, RoleUser, u.Role)
	assert.False(t, u.EmailVerified)
	assert.NotEqual(t, "passw0rd", u.Password)
	assert.Same(t, u, repo.created)

	// 哈希可反向验证
	assert.NoError(t, svc.ValidatePassword(u.Password, "passw0rd"))
}

func TestLogin(t *testing.T) {
	svc := NewService(&stubRepo{})
	hashed, err := svc.HashPassword("passw0rd")
	require.NoError(t, err)

	repo := &stubRepo{byEmail: map[string]*User{
		"an@example.com": {ID: 1, Email: "an@example.com", Password: hashed},
	}}
	svc = NewService(repo)

	t.Run("密码正确", func(t *testing.T) {
		u, err := svc.Login(context.Background(), "an@example.com", "passw0rd")
		require.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "an@example.com", "wr0ngpass")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ghost@example.com", "passw0rd")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestHashPassword_SaltsEachHash(t *testing.T) {
	svc := NewService(&stubRepo{})

	h1, err := svc.HashPassword("passw0rd")
	require.NoError(t, err)
	h2, err := svc.HashPassword("passw0rd")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestHashPassword_WeakPassword(t *testing.T) {
	svc := NewService(&stubRepo{})

	_, err := svc.HashPassword("short1")
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}
