package book

import (
	"regexp"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/genre"
)

// Book 图书聚合根
// 设计说明:
// 1. 领域实体扁平化持有基本信息+详情字段,持久化层拆分books/book_details两张表
// 2. 价格使用int64存储越南盾(VND为非十进制辅币货币,整数即足额精度)
// 3. ISBN为可空业务标识:空白串规范化为空,持久化为NULL(两本无ISBN的书不冲突)
// 4. Version为乐观锁版本号,更新时CAS比对
type Book struct {
	ID          uint
	Title       string
	Author      string
	ISBN        string // 规范化后的ISBN,空串表示未登记
	Publisher   string
	PublishDate *time.Time
	Price       int64 // 价格(VND)
	Stock       int   // 库存数量
	CoverURL    string
	Description string
	Genres      []genre.Genre // 多对多分类
	Version     int           // 乐观锁版本号
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书(工厂方法)
// isbn会先做规范化;price必须>0,stock必须>=0由Service校验
func NewBook(title, author, isbn, publisher string, publishDate *time.Time, price int64, stock int, coverURL, description string) *Book {
	now := time.Now()
	return &Book{
		Title:       title,
		Author:      author,
		ISBN:        NormalizeISBN(isbn),
		Publisher:   publisher,
		PublishDate: publishDate,
		Price:       price,
		Stock:       stock,
		CoverURL:    coverURL,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdatePrice 更新价格(领域行为)
func (b *Book) UpdatePrice(newPrice int64) error {
	if newPrice <= 0 {
		return ErrInvalidPrice
	}
	b.Price = newPrice
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateStock 直接设置库存(后台补货/盘点)
func (b *Book) UpdateStock(newStock int) error {
	if newStock < 0 {
		return ErrInvalidStock
	}
	b.Stock = newStock
	b.UpdatedAt = time.Now()
	return nil
}

// DecrStock 扣减库存(下单)
// 业务规则:扣减后库存不能为负
func (b *Book) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.Stock < quantity {
		return ErrInsufficientStock
	}
	b.Stock -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

// IncrStock 增加库存(订单取消回补)
func (b *Book) IncrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.Stock += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// InStock 是否有货
func (b *Book) InStock() bool {
	return b.Stock > 0
}

// =========================================
// ISBN辅助函数
// =========================================

var isbnSeparators = regexp.MustCompile(`[^0-9Xx]`)

// NormalizeISBN 规范化ISBN
// 去除分隔符(978-7-115-42802-8 → 9787115428028);空白串返回空串(持久化为NULL)
func NormalizeISBN(isbn string) string {
	clean := isbnSeparators.ReplaceAllString(isbn, "")
	return clean
}

// IsValidISBN 校验规范化后的ISBN格式
// 支持ISBN-10(末位可为X)和ISBN-13;只检查位数(生产环境可加校验位)
func IsValidISBN(isbn string) bool {
	length := len(isbn)
	return length == 10 || length == 13
}
