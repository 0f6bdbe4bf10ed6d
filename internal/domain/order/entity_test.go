package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    OrderStatus
		wantErr bool
	}{
		{"PENDING", OrderStatusPending, false},
		{"SHIPPED", OrderStatusShipped, false},
		{"DELIVERED", OrderStatusDelivered, false},
		{"CANCELLED", OrderStatusCancelled, false},
		{"pending", 0, true}, // 大小写敏感
		{"PAID", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseOrderStatus(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "输入%q应该解析失败", tt.input)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.input, got.String(), "String应该与解析输入互逆")
	}
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod("COD")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodCOD, m)

	m, err = ParsePaymentMethod("QR")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodQR, m)

	_, err = ParsePaymentMethod("CASH")
	assert.Error(t, err, "不支持的支付方式应该报错")
}

// TestOrderStateMachine 验证状态机的全部合法与非法流转
func TestOrderStateMachine(t *testing.T) {
	t.Run("PENDING可以发货", func(t *testing.T) {
		o := NewOrder(1, "Hà Nội", nil, 0)
		require.NoError(t, o.TransitionTo(OrderStatusShipped))
		assert.Equal(t, OrderStatusShipped, o.Status)
	})

	t.Run("PENDING可以取消", func(t *testing.T) {
		o := NewOrder(1, "Hà Nội", nil, 0)
		require.NoError(t, o.Cancel())
		assert.Equal(t, OrderStatusCancelled, o.Status)
	})

	t.Run("SHIPPED只能送达", func(t *testing.T) {
		o := NewOrder(1, "Hà Nội", nil, 0)
		require.NoError(t, o.TransitionTo(OrderStatusShipped))

		assert.ErrorIs(t, o.Cancel(), ErrInvalidStatusTransition, "已发货不能取消")
		assert.ErrorIs(t, o.TransitionTo(OrderStatusPending), ErrInvalidStatusTransition)

		require.NoError(t, o.TransitionTo(OrderStatusDelivered))
		assert.Equal(t, OrderStatusDelivered, o.Status)
	})

	t.Run("终态不可变", func(t *testing.T) {
		delivered := NewOrder(1, "", nil, 0)
		require.NoError(t, delivered.TransitionTo(OrderStatusShipped))
		require.NoError(t, delivered.TransitionTo(OrderStatusDelivered))
		for _, target := range []OrderStatus{OrderStatusPending, OrderStatusShipped, OrderStatusCancelled} {
			assert.False(t, delivered.CanTransitionTo(target), "DELIVERED不能转为%s", target)
		}

		cancelled := NewOrder(1, "", nil, 0)
		require.NoError(t, cancelled.Cancel())
		for _, target := range []OrderStatus{OrderStatusPending, OrderStatusShipped, OrderStatusDelivered} {
			assert.False(t, cancelled.CanTransitionTo(target), "CANCELLED不能转为%s", target)
		}
	})

	t.Run("不能跳级送达", func(t *testing.T) {
		o := NewOrder(1, "", nil, 0)
		assert.ErrorIs(t, o.TransitionTo(OrderStatusDelivered), ErrInvalidStatusTransition)
	})
}

func TestCalculateTotal(t *testing.T) {
	items := []OrderItem{
		{BookID: 1, Quantity: 2, PriceAtPurchase: 86000},
		{BookID: 2, Quantity: 1, PriceAtPurchase: 125000},
	}
	o := NewOrder(1, "Đà Nẵng", items, 297000)

	assert.Equal(t, int64(297000), o.CalculateTotal())
	assert.Equal(t, o.Total, o.CalculateTotal(), "冗余总额应该与明细一致")
}

func TestOrderOwnership(t *testing.T) {
	o := NewOrder(42, "", nil, 0)
	assert.True(t, o.IsOwnedBy(42))
	assert.False(t, o.IsOwnedBy(7))
}

func TestPaymentLifecycle(t *testing.T) {
	p := NewPayment(PaymentMethodCOD)

	assert.Equal(t, PaymentStatusPending, p.Status)
	assert.Nil(t, p.PaidAt)
	assert.True(t, strings.HasPrefix(p.TransactionCode, "TXN-"), "交易码格式: %s", p.TransactionCode)

	p.MarkPaid()
	assert.Equal(t, PaymentStatusPaid, p.Status)
	require.NotNil(t, p.PaidAt)

	p2 := NewPayment(PaymentMethodQR)
	p2.MarkFailed()
	assert.Equal(t, PaymentStatusFailed, p2.Status)
	assert.Nil(t, p2.PaidAt)
}

func TestGenerateTransactionCode_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateTransactionCode()
		assert.False(t, seen[code], "交易码不应该重复: %s", code)
		seen[code] = true
	}
}
