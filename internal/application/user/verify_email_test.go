package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/user"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func TestVerifyEmail_TokenSingleUse(t *testing.T) {
	u := &user.User{ID: 1, Email: "an@example.com"}
	repo := newFakeUserRepo(u)
	tokens := newFakeTokenStore(3)
	ctx := context.Background()
	require.NoError(t, tokens.SaveVerificationToken(ctx, "tok-1", 1, 0))
	uc := NewVerifyEmailUseCase(repo, tokens)

	require.NoError(t, uc.Execute(ctx, "tok-1"))
	assert.True(t, u.EmailVerified)

	// 令牌取走即删,重放失败
	err := uc.Execute(ctx, "tok-1")
	assert.ErrorIs(t, err, apperrors.ErrTokenUsed)
}

func TestVerifyEmail_UnknownToken(t *testing.T) {
	uc := NewVerifyEmailUseCase(newFakeUserRepo(), newFakeTokenStore(3))

	err := uc.Execute(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenUsed)
}

func TestResendVerification_RateLimited(t *testing.T) {
	u := &user.User{ID: 1, Email: "an@example.com"}
	tokens := newFakeTokenStore(1)
	mailer := &fakeMailSender{}
	uc := NewResendVerificationUseCase(newFakeUserRepo(u), tokens, mailer)
	ctx := context.Background()

	require.NoError(t, uc.Execute(ctx, 1))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "verification", mailer.sent[0].kind)
	assert.Equal(t, "an@example.com", mailer.sent[0].to)

	// 窗口内超限直接拒绝,不再发信
	err := uc.Execute(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrTooManyRequests)
	assert.Len(t, mailer.sent, 1)
}

func TestResendVerification_AlreadyVerified(t *testing.T) {
	u := &user.User{ID: 1, Email: "an@example.com", EmailVerified: true}
	mailer := &fakeMailSender{}
	uc := NewResendVerificationUseCase(newFakeUserRepo(u), newFakeTokenStore(3), mailer)

	err := uc.Execute(context.Background(), 1)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeBusinessError))
	assert.Empty(t, mailer.sent)
}

func TestResendVerification_MailCarriesConsumableToken(t *testing.T) {
	u := &user.User{ID: 7, Email: "an@example.com"}
	tokens := newFakeTokenStore(3)
	mailer := &fakeMailSender{}
	uc := NewResendVerificationUseCase(newFakeUserRepo(u), tokens, mailer)
	ctx := context.Background()

	require.NoError(t, uc.Execute(ctx, 7))
	require.Len(t, mailer.sent, 1)

	userID, err := tokens.ConsumeVerificationToken(ctx, mailer.sent[0].token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}
