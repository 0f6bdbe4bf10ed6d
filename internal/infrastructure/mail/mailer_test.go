package mail

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// recordingSender 记录投递的邮件,不连SMTP
type recordingSender struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (s *recordingSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (s *recordingSender) all() []sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMail(nil), s.sent...)
}

func newTestMailer(sender Sender) *Mailer {
	return NewMailer(sender, config.MailConfig{
		BaseURL:   "http://localhost:8080",
		Workers:   2,
		QueueSize: 10,
	})
}

func TestMailer_VerificationEmail(t *testing.T) {
	sender := &recordingSender{}
	m := newTestMailer(sender)

	err := m.SendVerificationEmail("an@example.com", "tok123")
	require.NoError(t, err)
	m.Shutdown() // 排空队列

	sent := sender.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "an@example.com", sent[0].To)
	assert.Contains(t, sent[0].Body, "http://localhost:8080/verify-email?token=tok123")
}

func TestMailer_PasswordResetEmail(t *testing.T) {
	sender := &recordingSender{}
	m := newTestMailer(sender)

	err := m.SendPasswordResetEmail("an@example.com", "rst456")
	require.NoError(t, err)
	m.Shutdown()

	sent := sender.all()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "/reset-password?token=rst456")
}

func TestMailer_HandleOrderEvent(t *testing.T) {
	event := mq.OrderEvent{
		OrderID:   42,
		UserID:    1,
		UserEmail: "an@example.com",
		Total:     297000,
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)

	t.Run("下单事件触发确认邮件", func(t *testing.T) {
		sender := &recordingSender{}
		m := newTestMailer(sender)

		require.NoError(t, m.HandleOrderEvent(mq.RoutingKeyOrderCreated, body))
		m.Shutdown()

		sent := sender.all()
		require.Len(t, sent, 1)
		assert.Equal(t, "an@example.com", sent[0].To)
		assert.Contains(t, sent[0].Body, "297.000₫")
		assert.Contains(t, sent[0].Body, "/orders/42")
	})

	t.Run("取消事件触发取消通知", func(t *testing.T) {
		sender := &recordingSender{}
		m := newTestMailer(sender)

		require.NoError(t, m.HandleOrderEvent(mq.RoutingKeyOrderCancelled, body))
		m.Shutdown()

		sent := sender.all()
		require.Len(t, sent, 1)
		assert.True(t, strings.Contains(sent[0].Subject, "取消"))
	})

	t.Run("坏消息不重试", func(t *testing.T) {
		sender := &recordingSender{}
		m := newTestMailer(sender)
		defer m.Shutdown()

		// 返回nil让Consumer做Ack,避免毒消息死循环
		assert.NoError(t, m.HandleOrderEvent(mq.RoutingKeyOrderCreated, []byte("{broken")))
		assert.Empty(t, sender.all())
	})

	t.Run("未知路由键忽略", func(t *testing.T) {
		sender := &recordingSender{}
		m := newTestMailer(sender)
		defer m.Shutdown()

		assert.NoError(t, m.HandleOrderEvent("order.refunded", body))
		assert.Empty(t, sender.all())
	})
}

func TestFormatVND(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0₫"},
		{500, "500₫"},
		{86000, "86.000₫"},
		{297000, "297.000₫"},
		{1250000, "1.250.000₫"},
		{-86000, "-86.000₫"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatVND(tt.amount))
	}
}
