package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
	"github.com/xiebiao/bookshop/pkg/workerpool"
)

// Mailer 异步邮件服务
// 所有Send*方法只做入队，真正的SMTP投递由worker池执行
type Mailer struct {
	sender  Sender
	pool    *workerpool.Pool
	baseURL string
}

// NewMailer 创建邮件服务并启动worker池
func NewMailer(sender Sender, cfg config.MailConfig) *Mailer {
	pool := workerpool.New("mailer", cfg.Workers, cfg.QueueSize)
	pool.Start()

	return &Mailer{
		sender:  sender,
		pool:    pool,
		baseURL: cfg.BaseURL,
	}
}

// SendVerificationEmail 发送邮箱验证邮件（链接24小时有效）
func (m *Mailer) SendVerificationEmail(to, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.baseURL, token)
	body := fmt.Sprintf(`<p>感谢注册BookShop！</p>
<p>请点击下面的链接完成邮箱验证（24小时内有效）：</p>
<p><a href="%s">%s</a></p>
<p>如果这不是您本人的操作，请忽略这封邮件。</p>`, link, link)

	return m.enqueue(to, "BookShop邮箱验证", body)
}

// SendPasswordResetEmail 发送密码重置邮件（链接30分钟有效）
func (m *Mailer) SendPasswordResetEmail(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.baseURL, token)
	body := fmt.Sprintf(`<p>我们收到了您的密码重置请求。</p>
<p>请点击下面的链接设置新密码（30分钟内有效）：</p>
<p><a href="%s">%s</a></p>
<p>如果这不是您本人的操作，请忽略这封邮件，您的密码不会改变。</p>`, link, link)

	return m.enqueue(to, "BookShop密码重置", body)
}

// SendOrderCreatedEmail 发送下单成功通知
func (m *Mailer) SendOrderCreatedEmail(event mq.OrderEvent) error {
	body := fmt.Sprintf(`<p>您的订单已创建成功！</p>
<p>订单号：%d</p>
<p>订单金额：%s</p>
<p>可在<a href="%s/orders/%d">订单详情页</a>查看进度。</p>`,
		event.OrderID, formatVND(event.Total), m.baseURL, event.OrderID)

	return m.enqueue(event.UserEmail, "BookShop下单成功通知", body)
}

// SendOrderCancelledEmail 发送订单取消通知
func (m *Mailer) SendOrderCancelledEmail(event mq.OrderEvent) error {
	body := fmt.Sprintf(`<p>您的订单已取消。</p>
<p>订单号：%d</p>
<p>订单金额：%s</p>
<p>商品库存已恢复，欢迎再次选购。</p>`,
		event.OrderID, formatVND(event.Total))

	return m.enqueue(event.UserEmail, "BookShop订单取消通知", body)
}

// HandleOrderEvent 处理订单事件（mq.Consumer的handler）
// 反序列化失败不重试（消息本身有问题，重新入队只会死循环）
func (m *Mailer) HandleOrderEvent(routingKey string, body []byte) error {
	var event mq.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("[mailer] 订单事件反序列化失败 key=%s: %v", routingKey, err)
		return nil
	}

	switch routingKey {
	case mq.RoutingKeyOrderCreated:
		return m.SendOrderCreatedEmail(event)
	case mq.RoutingKeyOrderCancelled:
		return m.SendOrderCancelledEmail(event)
	default:
		log.Printf("[mailer] 未知的订单事件 key=%s, 忽略", routingKey)
		return nil
	}
}

// Shutdown 停止worker池，排空队列中剩余的邮件
func (m *Mailer) Shutdown() {
	m.pool.Stop()
}

// enqueue 提交发送任务，队列满立即返回错误
func (m *Mailer) enqueue(to, subject, body string) error {
	err := m.pool.Submit(func(ctx context.Context) error {
		sendErr := m.sender.Send(ctx, to, subject, body)

		result := "success"
		if sendErr != nil {
			result = "failure"
			log.Printf("[mailer] 发送失败 to=%s subject=%s: %v", to, subject, sendErr)
		}
		if metrics.MailSentTotal != nil {
			metrics.MailSentTotal.WithLabelValues(result).Inc()
		}
		if metrics.MailQueueDepth != nil {
			metrics.MailQueueDepth.Set(float64(m.pool.QueueDepth()))
		}
		return sendErr
	})
	if err != nil {
		if metrics.MailRejectedTotal != nil {
			metrics.MailRejectedTotal.Inc()
		}
		return fmt.Errorf("邮件入队失败: %w", err)
	}

	if metrics.MailEnqueuedTotal != nil {
		metrics.MailEnqueuedTotal.Inc()
	}
	if metrics.MailQueueDepth != nil {
		metrics.MailQueueDepth.Set(float64(m.pool.QueueDepth()))
	}
	return nil
}

// formatVND 金额（đồng）加千分位，如 125000 -> "125.000₫"
func formatVND(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out) + "₫"
	}
	return string(out) + "₫"
}
