// Package mail 提供异步邮件发送
//
// 设计说明：
//  1. SMTPSender负责单封投递：限速（令牌桶）+ 熔断（连续失败快速拒绝）+ 超时
//  2. Mailer负责排队：HTTP请求只入队即返回，worker池后台投递
//  3. 不保证送达，失败只记录日志与指标（验证/重置邮件可由用户重发）
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// Sender 单封邮件投递接口（便于测试替换SMTP实现）
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPSender 基于net/smtp的投递实现
type SMTPSender struct {
	cfg     config.MailConfig
	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker
}

// NewSMTPSender 创建SMTP投递器
// rate_per_sec<=0表示不限速
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}

	cb := circuitbreaker.NewCircuitBreaker("smtp", circuitbreaker.Config{
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		if metrics.CircuitBreakerState != nil {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		}
	})

	return &SMTPSender{
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		breaker: cb,
	}
}

// Send 投递一封HTML邮件
// 先过限速器再过熔断器，熔断打开时返回circuitbreaker.ErrOpenState
func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("等待发送限速: %w", err)
	}

	if s.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SendTimeout)
		defer cancel()
	}

	err := s.breaker.Execute(func() error {
		return s.deliver(ctx, to, subject, htmlBody)
	})

	result := "success"
	if err != nil {
		result = "failure"
	}
	if metrics.CircuitBreakerRequests != nil {
		if err == circuitbreaker.ErrOpenState {
			result = "rejected"
		}
		metrics.CircuitBreakerRequests.WithLabelValues("smtp", result).Inc()
	}
	return err
}

// deliver 执行一次完整的SMTP会话
// net/smtp不支持context，用连接Deadline把超时传导给每个协议往返
func (s *SMTPSender) deliver(ctx context.Context, to, subject, htmlBody string) error {
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("连接SMTP服务器失败: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("建立SMTP会话失败: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return fmt.Errorf("STARTTLS失败: %w", err)
		}
	}

	// 本地调试（MailHog等）无需认证，留空Username即可
	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP认证失败: %w", err)
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("设置发件人失败: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("设置收件人失败: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("开始数据传输失败: %w", err)
	}
	if _, err := w.Write(buildMessage(s.cfg.From, to, subject, htmlBody)); err != nil {
		w.Close()
		return fmt.Errorf("写入邮件内容失败: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("结束数据传输失败: %w", err)
	}

	return client.Quit()
}

// buildMessage 拼装RFC 5322报文，主题按RFC 2047编码以支持中文
func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("UTF-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return []byte(b.String())
}
