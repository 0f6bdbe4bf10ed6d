package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/user"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 内存版仓储，只实现用例路径上会触达的方法

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeCartRepo struct {
	cart *cart.Cart
}

func (r *fakeCartRepo) GetOrCreateByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	if r.cart != nil && r.cart.UserID == userID {
		return r.cart, nil
	}
	return cart.NewCart(userID), nil
}

func (r *fakeCartRepo) FindItemByID(ctx context.Context, itemID uint) (*cart.CartItem, uint, error) {
	if r.cart != nil {
		if item := r.cart.FindItemByID(itemID); item != nil {
			return item, r.cart.UserID, nil
		}
	}
	return nil, 0, cart.ErrCartItemNotFound
}

func (r *fakeCartRepo) AddItem(ctx context.Context, item *cart.CartItem) error { return nil }

func (r *fakeCartRepo) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	return nil
}

func (r *fakeCartRepo) RemoveItem(ctx context.Context, itemID uint) error { return nil }

func (r *fakeCartRepo) ItemCount(ctx context.Context, userID uint) (int, error) {
	if r.cart == nil {
		return 0, nil
	}
	return r.cart.ItemCount(), nil
}

type fakeBookRepo struct {
	books       map[uint]*book.Book
	decremented map[uint]int // bookID → 已扣减数量
	incremented map[uint]int // bookID → 已回补数量
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	m := make(map[uint]*book.Book, len(books))
	for _, b := range books {
		m[b.ID] = b
	}
	return &fakeBookRepo{
		books:       m,
		decremented: make(map[uint]int),
		incremented: make(map[uint]int),
	}
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error { return nil }

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	result := make(map[uint]*book.Book)
	for _, id := range ids {
		if b, ok := r.books[id]; ok {
			result[id] = b
		}
	}
	return result, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error { return nil }
func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error      { return nil }

func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) DecrementStock(ctx context.Context, id uint, quantity int) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.Stock < quantity {
		return book.ErrInsufficientStock
	}
	b.Stock -= quantity
	r.decremented[id] += quantity
	return nil
}

func (r *fakeBookRepo) IncrementStock(ctx context.Context, id uint, quantity int) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.Stock += quantity
	r.incremented[id] += quantity
	return nil
}

type fakeOrderRepo struct {
	orders  map[uint]*order.Order
	nextID  uint
	updates []order.OrderStatus // UpdateStatus调用记录
}

func newFakeOrderRepo(orders ...*order.Order) *fakeOrderRepo {
	m := make(map[uint]*order.Order, len(orders))
	var maxID uint
	for _, o := range orders {
		m[o.ID] = o
		if o.ID > maxID {
			maxID = o.ID
		}
	}
	return &fakeOrderRepo{orders: m, nextID: maxID + 1}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	o.ID = r.nextID
	r.nextID++
	if o.Payment != nil {
		o.Payment.OrderID = o.ID
	}
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params order.ListParams) ([]*order.Order, int64, error) {
	var result []*order.Order
	for _, o := range r.orders {
		if params.UserID != 0 && o.UserID != params.UserID {
			continue
		}
		if params.Status != nil && o.Status != *params.Status {
			continue
		}
		result = append(result, o)
	}
	return result, int64(len(result)), nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, o *order.Order) error {
	stored, ok := r.orders[o.ID]
	if !ok {
		return order.ErrOrderNotFound
	}
	if stored.Version != o.Version {
		return apperrors.ErrVersionConflict
	}
	stored.Status = o.Status
	stored.Version++
	r.updates = append(r.updates, o.Status)
	return nil
}

func (r *fakeOrderRepo) UpdatePayment(ctx context.Context, p *order.Payment) error {
	for _, o := range r.orders {
		if o.Payment != nil && o.Payment.ID == p.ID {
			o.Payment.Status = p.Status
			o.Payment.PaidAt = p.PaidAt
			return nil
		}
	}
	return order.ErrOrderNotFound
}

type fakeUserRepo struct {
	users map[uint]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	m := make(map[uint]*user.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
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
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, params user.ListParams) ([]*user.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error { return nil }
