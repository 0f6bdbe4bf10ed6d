package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/order"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func newUpdateStatusFixture(o *order.Order) (*UpdateStatusUseCase, *fakeOrderRepo, *fakeBookRepo) {
	orderRepo := newFakeOrderRepo(o)
	bookRepo := newFakeBookRepo(
		&book.Book{ID: 101, Title: "Nhà Giả Kim", Price: 86000, Stock: 8},
		&book.Book{ID: 102, Title: "Đắc Nhân Tâm", Price: 125000, Stock: 4},
	)
	return NewUpdateStatusUseCase(orderRepo, bookRepo, &fakeTxManager{}), orderRepo, bookRepo
}

func TestUpdateStatus_Ship(t *testing.T) {
	uc, orderRepo, bookRepo := newUpdateStatusFixture(pendingOrder(order.OrderStatusPending))

	err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 7, Status: "SHIPPED"})
	require.NoError(t, err)

	stored, _ := orderRepo.FindByID(context.Background(), 7)
	assert.Equal(t, order.OrderStatusShipped, stored.Status)
	// 发货不动库存也不动支付单
	assert.Empty(t, bookRepo.incremented)
	assert.Equal(t, order.PaymentStatusPending, stored.Payment.Status)
}

func TestUpdateStatus_AdminCancelRestoresStock(t *testing.T) {
	uc, orderRepo, bookRepo := newUpdateStatusFixture(pendingOrder(order.OrderStatusPending))

	err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 7, Status: "CANCELLED"})
	require.NoError(t, err)

	stored, _ := orderRepo.FindByID(context.Background(), 7)
	assert.Equal(t, order.OrderStatusCancelled, stored.Status)
	assert.Equal(t, 2, bookRepo.incremented[101])
	assert.Equal(t, 1, bookRepo.incremented[102])
	assert.Equal(t, order.PaymentStatusFailed, stored.Payment.Status)
}

func TestUpdateStatus_DeliveredAutoPaysCOD(t *testing.T) {
	o := pendingOrder(order.OrderStatusShipped)
	uc, orderRepo, _ := newUpdateStatusFixture(o)

	err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 7, Status: "DELIVERED"})
	require.NoError(t, err)

	stored, _ := orderRepo.FindByID(context.Background(), 7)
	assert.Equal(t, order.OrderStatusDelivered, stored.Status)
	// 货到付款:送达即自动确认收款
	assert.Equal(t, order.PaymentStatusPaid, stored.Payment.Status)
	assert.NotNil(t, stored.Payment.PaidAt)
}

func TestUpdateStatus_DeliveredKeepsQRPending(t *testing.T) {
	o := pendingOrder(order.OrderStatusShipped)
	o.Payment = order.NewPayment(order.PaymentMethodQR)
	o.Payment.ID = 7
	o.Payment.OrderID = 7
	uc, orderRepo, _ := newUpdateStatusFixture(o)

	err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 7, Status: "DELIVERED"})
	require.NoError(t, err)

	// 扫码支付不随送达自动收款
	stored, _ := orderRepo.FindByID(context.Background(), 7)
	assert.Equal(t, order.PaymentStatusPending, stored.Payment.Status)
}

func TestUpdateStatus_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   order.OrderStatus
		target string
	}{
		{"PENDING不能跳级送达", order.OrderStatusPending, "DELIVERED"},
		{"SHIPPED不能取消", order.OrderStatusShipped, "CANCELLED"},
		{"终态CANCELLED不可变", order.OrderStatusCancelled, "SHIPPED"},
		{"终态DELIVERED不可变", order.OrderStatusDelivered, "PENDING"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, orderRepo, bookRepo := newUpdateStatusFixture(pendingOrder(tt.from))

			err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 7, Status: tt.target})
			assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)

			stored, _ := orderRepo.FindByID(context.Background(), 7)
			assert.Equal(t, tt.from, stored.Status)
			assert.Empty(t, bookRepo.incremented)
		})
	}
}

// staleOrderRepo 模拟读取订单后、提交前被另一管理员抢先更新
type staleOrderRepo struct {
	*fakeOrderRepo
}

func (r *staleOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	stored, err := r.fakeOrderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	snapshot := *stored
	stored.Version++ // 并发提交抢先一步
	return &snapshot, nil
}

func TestUpdateStatus_StaleVersionConflict(t *testing.T) {
	orderRepo := newFakeOrderRepo(pendingOrder(order.OrderStatusPending))
	bookRepo := newFakeBookRepo(
		&book.Book{ID: 101, Title: "Nhà Giả Kim", Price: 86000, Stock: 8},
		&book.Book{ID: 102, Title: "Đắc Nhân Tâm", Price: 125000, Stock: 4},
	)
	uc := NewUpdateStatusUseCase(&staleOrderRepo{orderRepo}, bookRepo, &fakeTxManager{})

	err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 7, Status: "SHIPPED"})
	assert.ErrorIs(t, err, apperrors.ErrVersionConflict)

	// 冲突时状态不落库
	stored, _ := orderRepo.FindByID(context.Background(), 7)
	assert.Equal(t, order.OrderStatusPending, stored.Status)
	assert.Empty(t, orderRepo.updates)
}

func TestUpdateStatus_UnknownStatusToken(t *testing.T) {
	uc, _, _ := newUpdateStatusFixture(pendingOrder(order.OrderStatusPending))

	err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 7, Status: "shipped"})
	assert.Error(t, err)
}
