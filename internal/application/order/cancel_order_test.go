package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/user"
)

func pendingOrder(status order.OrderStatus) *order.Order {
	o := order.NewOrder(1, "123 Lê Lợi, Quận 1", []order.OrderItem{
		{BookID: 101, BookTitle: "Nhà Giả Kim", Quantity: 2, PriceAtPurchase: 86000},
		{BookID: 102, BookTitle: "Đắc Nhân Tâm", Quantity: 1, PriceAtPurchase: 125000},
	}, 297000)
	o.ID = 7
	o.Status = status
	o.Payment = order.NewPayment(order.PaymentMethodCOD)
	o.Payment.ID = 7
	o.Payment.OrderID = 7
	return o
}

func newCancelFixture(o *order.Order) (*CancelOrderUseCase, *fakeOrderRepo, *fakeBookRepo) {
	orderRepo := newFakeOrderRepo(o)
	bookRepo := newFakeBookRepo(
		&book.Book{ID: 101, Title: "Nhà Giả Kim", Price: 86000, Stock: 8},
		&book.Book{ID: 102, Title: "Đắc Nhân Tâm", Price: 125000, Stock: 4},
	)
	uc := NewCancelOrderUseCase(
		orderRepo,
		bookRepo,
		newFakeUserRepo(&user.User{ID: 1, Email: "an@example.com"}),
		&fakeTxManager{},
		nil,
	)
	return uc, orderRepo, bookRepo
}

func TestCancelOrder_Success(t *testing.T) {
	o := pendingOrder(order.OrderStatusPending)
	uc, orderRepo, bookRepo := newCancelFixture(o)

	err := uc.Execute(context.Background(), 1, 7)
	require.NoError(t, err)

	// 状态变更+库存逐项返还
	stored, _ := orderRepo.FindByID(context.Background(), 7)
	assert.Equal(t, order.OrderStatusCancelled, stored.Status)
	assert.Equal(t, 2, bookRepo.incremented[101])
	assert.Equal(t, 1, bookRepo.incremented[102])
	assert.Equal(t, 10, bookRepo.books[101].Stock)

	// 未支付的支付单标记FAILED
	assert.Equal(t, order.PaymentStatusFailed, stored.Payment.Status)
}

func TestCancelOrder_NotOwner(t *testing.T) {
	uc, _, bookRepo := newCancelFixture(pendingOrder(order.OrderStatusPending))

	err := uc.Execute(context.Background(), 99, 7)
	assert.ErrorIs(t, err, order.ErrNotOrderOwner)
	assert.Empty(t, bookRepo.incremented)
}

func TestCancelOrder_OnlyPendingCancellable(t *testing.T) {
	for _, status := range []order.OrderStatus{
		order.OrderStatusShipped,
		order.OrderStatusDelivered,
		order.OrderStatusCancelled,
	} {
		t.Run(status.String(), func(t *testing.T) {
			uc, orderRepo, bookRepo := newCancelFixture(pendingOrder(status))

			err := uc.Execute(context.Background(), 1, 7)
			assert.ErrorIs(t, err, order.ErrOrderNotCancellable)

			stored, _ := orderRepo.FindByID(context.Background(), 7)
			assert.Equal(t, status, stored.Status)
			assert.Empty(t, bookRepo.incremented)
		})
	}
}

func TestCancelOrder_NotFound(t *testing.T) {
	uc, _, _ := newCancelFixture(pendingOrder(order.OrderStatusPending))

	err := uc.Execute(context.Background(), 1, 404)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestCancelOrder_PaidPaymentUntouched(t *testing.T) {
	o := pendingOrder(order.OrderStatusPending)
	o.Payment.MarkPaid()
	uc, orderRepo, _ := newCancelFixture(o)

	err := uc.Execute(context.Background(), 1, 7)
	require.NoError(t, err)

	// 已支付的支付单不被改写(退款走线下流程)
	stored, _ := orderRepo.FindByID(context.Background(), 7)
	assert.Equal(t, order.PaymentStatusPaid, stored.Payment.Status)
}
