package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 内存购物车仓储,覆盖加购路径
type memCartRepo struct {
	cart   *cart.Cart
	nextID uint
}

func newMemCartRepo(userID uint, items ...cart.CartItem) *memCartRepo {
	return &memCartRepo{
		cart:   &cart.Cart{ID: 1, UserID: userID, Items: items},
		nextID: 100,
	}
}

func (r *memCartRepo) GetOrCreateByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	return r.cart, nil
}

func (r *memCartRepo) FindItemByID(ctx context.Context, itemID uint) (*cart.CartItem, uint, error) {
	if item := r.cart.FindItemByID(itemID); item != nil {
		return item, r.cart.UserID, nil
	}
	return nil, 0, cart.ErrCartItemNotFound
}

func (r *memCartRepo) AddItem(ctx context.Context, item *cart.CartItem) error {
	item.ID = r.nextID
	r.nextID++
	r.cart.Items = append(r.cart.Items, *item)
	return nil
}

func (r *memCartRepo) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	if item := r.cart.FindItemByID(itemID); item != nil {
		item.Quantity = quantity
		return nil
	}
	return cart.ErrCartItemNotFound
}

func (r *memCartRepo) RemoveItem(ctx context.Context, itemID uint) error {
	for i := range r.cart.Items {
		if r.cart.Items[i].ID == itemID {
			r.cart.Items = append(r.cart.Items[:i], r.cart.Items[i+1:]...)
			return nil
		}
	}
	return cart.ErrCartItemNotFound
}

func (r *memCartRepo) ItemCount(ctx context.Context, userID uint) (int, error) {
	return r.cart.ItemCount(), nil
}

type stubBookRepo struct {
	books map[uint]*book.Book
}

func (r *stubBookRepo) Create(ctx context.Context, b *book.Book) error { return nil }

func (r *stubBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	if b, ok := r.books[id]; ok {
		return b, nil
	}
	return nil, book.ErrBookNotFound
}

func (r *stubBookRepo) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (r *stubBookRepo) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	return r.books, nil
}

func (r *stubBookRepo) Update(ctx context.Context, b *book.Book) error { return nil }
func (r *stubBookRepo) Delete(ctx context.Context, id uint) error      { return nil }

func (r *stubBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *stubBookRepo) DecrementStock(ctx context.Context, id uint, quantity int) error { return nil }
func (r *stubBookRepo) IncrementStock(ctx context.Context, id uint, quantity int) error { return nil }

func newAddItemFixture(cartRepo *memCartRepo, books ...*book.Book) *AddItemUseCase {
	m := make(map[uint]*book.Book, len(books))
	for _, b := range books {
		m[b.ID] = b
	}
	return NewAddItemUseCase(cartRepo, &stubBookRepo{books: m})
}

func TestAddItem_NewEntry(t *testing.T) {
	cartRepo := newMemCartRepo(1)
	uc := newAddItemFixture(cartRepo, &book.Book{ID: 101, Title: "Nhà Giả Kim", Stock: 10})

	resp, err := uc.Execute(context.Background(), AddItemRequest{UserID: 1, BookID: 101, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Quantity)
	assert.Equal(t, 2, resp.ItemCount)
	require.Len(t, cartRepo.cart.Items, 1)
	assert.Equal(t, resp.ItemID, cartRepo.cart.Items[0].ID)
}

func TestAddItem_MergesExistingEntry(t *testing.T) {
	cartRepo := newMemCartRepo(1, cart.CartItem{ID: 11, CartID: 1, BookID: 101, Quantity: 3})
	uc := newAddItemFixture(cartRepo, &book.Book{ID: 101, Title: "Nhà Giả Kim", Stock: 10})

	resp, err := uc.Execute(context.Background(), AddItemRequest{UserID: 1, BookID: 101, Quantity: 2})
	require.NoError(t, err)

	// 同书条目累加,不新建
	assert.Equal(t, uint(11), resp.ItemID)
	assert.Equal(t, 5, resp.Quantity)
	require.Len(t, cartRepo.cart.Items, 1)
	assert.Equal(t, 5, cartRepo.cart.Items[0].Quantity)
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	uc := newAddItemFixture(newMemCartRepo(1), &book.Book{ID: 101, Stock: 10})

	for _, qty := range []int{0, -1} {
		_, err := uc.Execute(context.Background(), AddItemRequest{UserID: 1, BookID: 101, Quantity: qty})
		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	}
}

func TestAddItem_BookNotFound(t *testing.T) {
	uc := newAddItemFixture(newMemCartRepo(1))

	_, err := uc.Execute(context.Background(), AddItemRequest{UserID: 1, BookID: 404, Quantity: 1})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestAddItem_OutOfStock(t *testing.T) {
	uc := newAddItemFixture(newMemCartRepo(1), &book.Book{ID: 101, Title: "Nhà Giả Kim", Stock: 0})

	_, err := uc.Execute(context.Background(), AddItemRequest{UserID: 1, BookID: 101, Quantity: 1})
	assert.ErrorIs(t, err, book.ErrOutOfStock)
}

func TestAddItem_CombinedQuantityExceedsStock(t *testing.T) {
	cartRepo := newMemCartRepo(1, cart.CartItem{ID: 11, CartID: 1, BookID: 101, Quantity: 4})
	uc := newAddItemFixture(cartRepo, &book.Book{ID: 101, Title: "Nhà Giả Kim", Stock: 5})

	// 车内4 + 本次2 > 库存5
	_, err := uc.Execute(context.Background(), AddItemRequest{UserID: 1, BookID: 101, Quantity: 2})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInsufficientStock))
	assert.Equal(t, 4, cartRepo.cart.Items[0].Quantity, "校验失败时数量不应变化")
}
