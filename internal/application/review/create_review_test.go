package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/review"
)

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

func newCreateReviewFixture(repo *memReviewRepo, books ...*book.Book) *CreateReviewUseCase {
	m := make(map[uint]*book.Book, len(books))
	for _, b := range books {
		m[b.ID] = b
	}
	return NewCreateReviewUseCase(repo, &stubBookRepo{books: m})
}

func TestCreateReview_Success(t *testing.T) {
	repo := newMemReviewRepo()
	uc := newCreateReviewFixture(repo, &book.Book{ID: 101, Title: "Nhà Giả Kim"})

	resp, err := uc.Execute(context.Background(), CreateReviewRequest{
		UserID:  1,
		BookID:  101,
		Rating:  5,
		Comment: "Sách rất hay",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ReviewID)

	stored, err := repo.FindByID(context.Background(), resp.ReviewID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Rating)
	assert.Equal(t, "Sách rất hay", stored.Comment)
}

func TestCreateReview_DuplicatePerUserAndBook(t *testing.T) {
	repo := newMemReviewRepo()
	uc := newCreateReviewFixture(repo, &book.Book{ID: 101, Title: "Nhà Giả Kim"})
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateReviewRequest{UserID: 1, BookID: 101, Rating: 4})
	require.NoError(t, err)

	// 同一(用户,图书)第二次发表被唯一约束拒绝
	_, err = uc.Execute(ctx, CreateReviewRequest{UserID: 1, BookID: 101, Rating: 2, Comment: "改主意了"})
	assert.ErrorIs(t, err, review.ErrReviewDuplicate)
	assert.Len(t, repo.reviews, 1)

	// 其他用户评同一本书、同一用户评其他书均不受影响
	_, err = uc.Execute(ctx, CreateReviewRequest{UserID: 2, BookID: 101, Rating: 3})
	assert.NoError(t, err)
}

func TestCreateReview_BookNotFound(t *testing.T) {
	uc := newCreateReviewFixture(newMemReviewRepo())

	_, err := uc.Execute(context.Background(), CreateReviewRequest{UserID: 1, BookID: 404, Rating: 4})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestCreateReview_InvalidRating(t *testing.T) {
	repo := newMemReviewRepo()
	uc := newCreateReviewFixture(repo, &book.Book{ID: 101, Title: "Nhà Giả Kim"})

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.Execute(context.Background(), CreateReviewRequest{UserID: 1, BookID: 101, Rating: rating})
		assert.ErrorIs(t, err, review.ErrInvalidRating)
	}
	assert.Empty(t, repo.reviews)
}
