package order

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/user"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func newCheckoutFixture(c *cart.Cart, bookRepo *fakeBookRepo) (*CheckoutUseCase, *fakeOrderRepo) {
	orderRepo := newFakeOrderRepo()
	uc := NewCheckoutUseCase(
		&fakeCartRepo{cart: c},
		bookRepo,
		orderRepo,
		newFakeUserRepo(&user.User{ID: 1, Email: "an@example.com", Address: "123 Lê Lợi, Quận 1, TP.HCM"}),
		&fakeTxManager{},
		nil, // 消息队列未启用
	)
	return uc, orderRepo
}

func twoItemCart() *cart.Cart {
	return &cart.Cart{
		ID:     1,
		UserID: 1,
		Items: []cart.CartItem{
			{ID: 11, CartID: 1, BookID: 101, Quantity: 2},
			{ID: 12, CartID: 1, BookID: 102, Quantity: 1},
		},
	}
}

func TestCheckout_Success(t *testing.T) {
	bookRepo := newFakeBookRepo(
		&book.Book{ID: 101, Title: "Nhà Giả Kim", Price: 86000, Stock: 10},
		&book.Book{ID: 102, Title: "Đắc Nhân Tâm", Price: 125000, Stock: 5},
	)
	uc, orderRepo := newCheckoutFixture(twoItemCart(), bookRepo)

	resp, err := uc.Execute(context.Background(), CheckoutRequest{
		UserID:        1,
		PaymentMethod: "COD",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	// 响应:总额按快照价计算,订单初始PENDING
	assert.Equal(t, int64(2*86000+125000), resp.Total)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "COD", resp.PaymentMethod)
	assert.True(t, strings.HasPrefix(resp.TransactionCode, "TXN-"))

	// 落库的订单:明细快照书名与单价,支付单PENDING
	created, err := orderRepo.FindByID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderStatusPending, created.Status)
	assert.Equal(t, "123 Lê Lợi, Quận 1, TP.HCM", created.ShippingAddress)
	require.Len(t, created.Items, 2)
	assert.Equal(t, "Nhà Giả Kim", created.Items[0].BookTitle)
	assert.Equal(t, int64(86000), created.Items[0].PriceAtPurchase)
	require.NotNil(t, created.Payment)
	assert.Equal(t, order.PaymentStatusPending, created.Payment.Status)
	assert.Equal(t, created.ID, created.Payment.OrderID)

	// 库存逐项扣减
	assert.Equal(t, 2, bookRepo.decremented[101])
	assert.Equal(t, 1, bookRepo.decremented[102])
	assert.Equal(t, 8, bookRepo.books[101].Stock)
}

func TestCheckout_EmptyCart(t *testing.T) {
	uc, orderRepo := newCheckoutFixture(&cart.Cart{ID: 1, UserID: 1}, newFakeBookRepo())

	_, err := uc.Execute(context.Background(), CheckoutRequest{UserID: 1, PaymentMethod: "COD"})
	assert.ErrorIs(t, err, cart.ErrEmptyCart)
	assert.Empty(t, orderRepo.orders)
}

func TestCheckout_ItemFilter(t *testing.T) {
	bookRepo := newFakeBookRepo(
		&book.Book{ID: 101, Title: "Nhà Giả Kim", Price: 86000, Stock: 10},
		&book.Book{ID: 102, Title: "Đắc Nhân Tâm", Price: 125000, Stock: 5},
	)

	t.Run("只结算选中的条目", func(t *testing.T) {
		uc, orderRepo := newCheckoutFixture(twoItemCart(), bookRepo)
		resp, err := uc.Execute(context.Background(), CheckoutRequest{
			UserID:        1,
			ItemIDs:       "12",
			PaymentMethod: "QR",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(125000), resp.Total)

		created, _ := orderRepo.FindByID(context.Background(), resp.OrderID)
		require.Len(t, created.Items, 1)
		assert.Equal(t, uint(102), created.Items[0].BookID)
	})

	t.Run("ID格式错误", func(t *testing.T) {
		uc, _ := newCheckoutFixture(twoItemCart(), bookRepo)
		_, err := uc.Execute(context.Background(), CheckoutRequest{
			UserID:        1,
			ItemIDs:       "12,abc",
			PaymentMethod: "COD",
		})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidParams))
	})

	t.Run("全部不匹配视为无有效条目", func(t *testing.T) {
		uc, orderRepo := newCheckoutFixture(twoItemCart(), bookRepo)
		_, err := uc.Execute(context.Background(), CheckoutRequest{
			UserID:        1,
			ItemIDs:       "999",
			PaymentMethod: "COD",
		})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidParams))
		assert.Empty(t, orderRepo.orders)
	})
}

func TestCheckout_InvalidPaymentMethod(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: 101, Title: "Nhà Giả Kim", Price: 86000, Stock: 10})
	uc, _ := newCheckoutFixture(twoItemCart(), bookRepo)

	_, err := uc.Execute(context.Background(), CheckoutRequest{UserID: 1, PaymentMethod: "BITCOIN"})
	assert.ErrorIs(t, err, order.ErrInvalidPaymentMethod)
}

func TestCheckout_StockValidation(t *testing.T) {
	t.Run("售罄图书拒绝结算", func(t *testing.T) {
		bookRepo := newFakeBookRepo(
			&book.Book{ID: 101, Title: "Nhà Giả Kim", Price: 86000, Stock: 0},
			&book.Book{ID: 102, Title: "Đắc Nhân Tâm", Price: 125000, Stock: 5},
		)
		uc, orderRepo := newCheckoutFixture(twoItemCart(), bookRepo)

		_, err := uc.Execute(context.Background(), CheckoutRequest{UserID: 1, PaymentMethod: "COD"})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeOutOfStock))
		assert.Empty(t, orderRepo.orders)
		assert.Empty(t, bookRepo.decremented)
	})

	t.Run("库存不足整单中止", func(t *testing.T) {
		bookRepo := newFakeBookRepo(
			&book.Book{ID: 101, Title: "Nhà Giả Kim", Price: 86000, Stock: 1}, // 需要2本
			&book.Book{ID: 102, Title: "Đắc Nhân Tâm", Price: 125000, Stock: 5},
		)
		uc, orderRepo := newCheckoutFixture(twoItemCart(), bookRepo)

		_, err := uc.Execute(context.Background(), CheckoutRequest{UserID: 1, PaymentMethod: "COD"})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInsufficientStock))
		assert.Empty(t, orderRepo.orders)
		assert.Empty(t, bookRepo.decremented)
	})
}

func TestCheckout_ShippingAddress(t *testing.T) {
	bookRepo := newFakeBookRepo(
		&book.Book{ID: 101, Title: "Nhà Giả Kim", Price: 86000, Stock: 10},
		&book.Book{ID: 102, Title: "Đắc Nhân Tâm", Price: 125000, Stock: 5},
	)

	t.Run("请求地址优先于档案地址", func(t *testing.T) {
		uc, orderRepo := newCheckoutFixture(twoItemCart(), bookRepo)
		resp, err := uc.Execute(context.Background(), CheckoutRequest{
			UserID:          1,
			PaymentMethod:   "COD",
			ShippingAddress: "  45 Nguyễn Huệ, Đà Nẵng  ",
		})
		require.NoError(t, err)
		created, _ := orderRepo.FindByID(context.Background(), resp.OrderID)
		assert.Equal(t, "45 Nguyễn Huệ, Đà Nẵng", created.ShippingAddress)
	})

	t.Run("档案也无地址时拒绝", func(t *testing.T) {
		orderRepo := newFakeOrderRepo()
		uc := NewCheckoutUseCase(
			&fakeCartRepo{cart: twoItemCart()},
			bookRepo,
			orderRepo,
			newFakeUserRepo(&user.User{ID: 1, Email: "an@example.com"}), // 无默认地址
			&fakeTxManager{},
			nil,
		)
		_, err := uc.Execute(context.Background(), CheckoutRequest{UserID: 1, PaymentMethod: "COD"})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidParams))
		assert.Empty(t, orderRepo.orders)
	})
}

// 事务内条件扣减失败时整体回滚,订单不应残留
func TestCheckout_RollbackOnConcurrentStockRace(t *testing.T) {
	bookRepo := newFakeBookRepo(
		&book.Book{ID: 101, Title: "Nhà Giả Kim", Price: 86000, Stock: 10},
		&book.Book{ID: 102, Title: "Đắc Nhân Tâm", Price: 125000, Stock: 5},
	)
	c := twoItemCart()
	orderRepo := newFakeOrderRepo()
	tx := &rollbackTxManager{orderRepo: orderRepo}
	uc := NewCheckoutUseCase(
		&fakeCartRepo{cart: c},
		&racingBookRepo{fakeBookRepo: bookRepo},
		orderRepo,
		newFakeUserRepo(&user.User{ID: 1, Email: "an@example.com", Address: "123 Lê Lợi"}),
		tx,
		nil,
	)

	_, err := uc.Execute(context.Background(), CheckoutRequest{UserID: 1, PaymentMethod: "COD"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInsufficientStock))
	assert.Empty(t, orderRepo.orders, "扣减失败后事务回滚,订单不应落库")
}

// racingBookRepo 模拟并发竞争:快速校验通过,事务内条件扣减却失败
type racingBookRepo struct {
	*fakeBookRepo
}

func (r *racingBookRepo) DecrementStock(ctx context.Context, id uint, quantity int) error {
	if id == 102 {
		return book.ErrInsufficientStock
	}
	return r.fakeBookRepo.DecrementStock(ctx, id, quantity)
}

// rollbackTxManager 模拟事务回滚:fn失败时撤销本次创建的订单
type rollbackTxManager struct {
	orderRepo *fakeOrderRepo
}

func (m *rollbackTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	before := make(map[uint]*order.Order, len(m.orderRepo.orders))
	for id, o := range m.orderRepo.orders {
		before[id] = o
	}
	if err := fn(ctx); err != nil {
		m.orderRepo.orders = before
		return err
	}
	return nil
}
