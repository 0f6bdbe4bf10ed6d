package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"978-7-115-42802-8", "9787115428028"},
		{"978 7 115 42802 8", "9787115428028"},
		{"9787115428028", "9787115428028"},
		{"04-7195-869X", "047195869X"}, // ISBN-10末位X保留
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeISBN(tt.input), "输入%q", tt.input)
	}
}

func TestIsValidISBN(t *testing.T) {
	assert.True(t, IsValidISBN("9787115428028"))  // 13位
	assert.True(t, IsValidISBN("047195869X"))     // 10位
	assert.False(t, IsValidISBN("12345"))
	assert.False(t, IsValidISBN(""))
}

func TestBookStockOperations(t *testing.T) {
	b := NewBook("Số Đỏ", "Vũ Trọng Phụng", "", "NXB Văn học", nil, 68000, 10, "", "")

	t.Run("正常扣减", func(t *testing.T) {
		require.NoError(t, b.DecrStock(3))
		assert.Equal(t, 7, b.Stock)
	})

	t.Run("超量扣减被拒", func(t *testing.T) {
		assert.ErrorIs(t, b.DecrStock(8), ErrInsufficientStock)
		assert.Equal(t, 7, b.Stock, "失败的扣减不应该改变库存")
	})

	t.Run("非法数量", func(t *testing.T) {
		assert.ErrorIs(t, b.DecrStock(0), ErrInvalidQuantity)
		assert.ErrorIs(t, b.DecrStock(-1), ErrInvalidQuantity)
		assert.ErrorIs(t, b.IncrStock(0), ErrInvalidQuantity)
	})

	t.Run("回补库存", func(t *testing.T) {
		require.NoError(t, b.IncrStock(3))
		assert.Equal(t, 10, b.Stock)
	})

	t.Run("扣到零后无货", func(t *testing.T) {
		require.NoError(t, b.DecrStock(10))
		assert.Equal(t, 0, b.Stock)
		assert.False(t, b.InStock())
	})
}

func TestBookPriceUpdate(t *testing.T) {
	b := NewBook("Dế Mèn Phiêu Lưu Ký", "Tô Hoài", "", "", nil, 45000, 5, "", "")

	require.NoError(t, b.UpdatePrice(52000))
	assert.Equal(t, int64(52000), b.Price)

	assert.ErrorIs(t, b.UpdatePrice(0), ErrInvalidPrice)
	assert.ErrorIs(t, b.UpdatePrice(-100), ErrInvalidPrice)
	assert.Equal(t, int64(52000), b.Price)
}

func TestNewBook_NormalizesISBN(t *testing.T) {
	b := NewBook("Test", "Tác giả", "978-604-2-29908-6", "", nil, 100000, 1, "", "")
	assert.Equal(t, "9786042299086", b.ISBN)
}
