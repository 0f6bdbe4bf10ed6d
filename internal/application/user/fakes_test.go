package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/user"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 内存令牌存储,对齐Redis实现的GETDEL与固定窗口计数语义
type fakeTokenStore struct {
	verification map[string]uint
	reset        map[string]uint
	mailQuota    int // 剩余可发信次数,<=0时AllowMailSend拒绝
}

func newFakeTokenStore(mailQuota int) *fakeTokenStore {
	return &fakeTokenStore{
		verification: make(map[string]uint),
		reset:        make(map[string]uint),
		mailQuota:    mailQuota,
	}
}

func (s *fakeTokenStore) SaveVerificationToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	s.verification[token] = userID
	return nil
}

func (s *fakeTokenStore) ConsumeVerificationToken(ctx context.Context, token string) (uint, error) {
	return consumeFakeToken(s.verification, token)
}

func (s *fakeTokenStore) SaveResetToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	s.reset[token] = userID
	return nil
}

func (s *fakeTokenStore) ConsumeResetToken(ctx context.Context, token string) (uint, error) {
	return consumeFakeToken(s.reset, token)
}

// 取走即删除,缺失与已使用不可区分
func consumeFakeToken(m map[string]uint, token string) (uint, error) {
	userID, ok := m[token]
	if !ok {
		return 0, apperrors.ErrTokenUsed
	}
	delete(m, token)
	return userID, nil
}

func (s *fakeTokenStore) AllowMailSend(ctx context.Context, email string) (bool, error) {
	if s.mailQuota <= 0 {
		return false, nil
	}
	s.mailQuota--
	return true, nil
}

type sentMail struct {
	kind  string // verification | reset
	to    string
	token string
}

type fakeMailSender struct {
	sent []sentMail
}

func (m *fakeMailSender) SendVerificationEmail(to, token string) error {
	m.sent = append(m.sent, sentMail{kind: "verification", to: to, token: token})
	return nil
}

func (m *fakeMailSender) SendPasswordResetEmail(to, token string) error {
	m.sent = append(m.sent, sentMail{kind: "reset", to: to, token: token})
	return nil
}

type fakeSessionStore struct {
	deleted []uint
}

func (s *fakeSessionStore) SaveSession(ctx context.Context, userID uint, sessionData map[string]interface{}, ttl time.Duration) error {
	return nil
}

func (s *fakeSessionStore) DeleteSession(ctx context.Context, userID uint) error {
	s.deleted = append(s.deleted, userID)
	return nil
}

func (s *fakeSessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	return nil
}

// 内存用户仓储
type fakeUserRepo struct {
	users     map[uint]*user.User
	passwords map[uint]string // UpdatePassword落盘记录
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	m := make(map[uint]*user.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m, passwords: make(map[uint]string)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	r.passwords[id] = hashedPassword
	if u, ok := r.users[id]; ok {
		u.Password = hashedPassword
	}
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, params user.ListParams) ([]*user.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error { return nil }
