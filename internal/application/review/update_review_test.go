package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/review"
)

func TestUpdateReview_Success(t *testing.T) {
	repo := newMemReviewRepo(&review.Review{ID: 5, UserID: 1, BookID: 101, Rating: 2, Comment: "一般"})
	uc := NewUpdateReviewUseCase(repo)

	err := uc.Execute(context.Background(), UpdateReviewRequest{
		UserID:   1,
		ReviewID: 5,
		Rating:   5,
		Comment:  "重读之后改观了",
	})
	require.NoError(t, err)

	stored := repo.reviews[5]
	assert.Equal(t, 5, stored.Rating)
	assert.Equal(t, "重读之后改观了", stored.Comment)
}

func TestUpdateReview_NotOwner(t *testing.T) {
	repo := newMemReviewRepo(&review.Review{ID: 5, UserID: 1, BookID: 101, Rating: 2})
	uc := NewUpdateReviewUseCase(repo)

	err := uc.Execute(context.Background(), UpdateReviewRequest{
		UserID:   99,
		ReviewID: 5,
		Rating:   1,
	})
	assert.ErrorIs(t, err, review.ErrNotReviewOwner)
	assert.Equal(t, 2, repo.reviews[5].Rating)
}

func TestUpdateReview_InvalidRating(t *testing.T) {
	repo := newMemReviewRepo(&review.Review{ID: 5, UserID: 1, BookID: 101, Rating: 2})
	uc := NewUpdateReviewUseCase(repo)

	for _, rating := range []int{0, 6} {
		err := uc.Execute(context.Background(), UpdateReviewRequest{
			UserID:   1,
			ReviewID: 5,
			Rating:   rating,
		})
		assert.ErrorIs(t, err, review.ErrInvalidRating)
	}
}

func TestUpdateReview_NotFound(t *testing.T) {
	uc := NewUpdateReviewUseCase(newMemReviewRepo())

	err := uc.Execute(context.Background(), UpdateReviewRequest{
		UserID:   1,
		ReviewID: 404,
		Rating:   3,
	})
	assert.ErrorIs(t, err, review.ErrReviewNotFound)
}
