package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/application/admin"
	"github.com/xiebiao/bookshop/internal/domain/order"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// reportRepository 报表仓储实现(MySQL)
// 跨聚合的只读统计,全部是聚合查询,不走领域实体
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建报表仓储
func NewReportRepository(db *gorm.DB) admin.ReportRepository {
	return &reportRepository{db: db}
}

// CountOrdersByStatus 各状态订单数
func (r *reportRepository) CountOrdersByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status int
		Count  int64
	}
	err := getDB(ctx, r.db).Model(&OrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计订单状态失败")
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[order.OrderStatus(row.Status).String()] = row.Count
	}
	return result, nil
}

// SumRevenue 已支付订单的营收总额
func (r *reportRepository) SumRevenue(ctx context.Context) (int64, error) {
	var revenue *int64
	err := getDB(ctx, r.db).Table("payments").
		Select("SUM(orders.total)").
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("payments.status = ?", int(order.PaymentStatusPaid)).
		Scan(&revenue).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计营收失败")
	}
	if revenue == nil {
		return 0, nil
	}
	return *revenue, nil
}

// CountUsers 用户总数
func (r *reportRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := getDB(ctx, r.db).Model(&UserModel{}).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计用户数失败")
	}
	return count, nil
}

// CountBooks 图书总数
func (r *reportRepository) CountBooks(ctx context.Context) (int64, error) {
	var count int64
	if err := getDB(ctx, r.db).Model(&BookModel{}).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计图书数失败")
	}
	return count, nil
}

// TopSellingBooks 销量前N的图书
// 口径:非取消订单的明细数量求和
func (r *reportRepository) TopSellingBooks(ctx context.Context, limit int) ([]admin.BookSales, error) {
	var rows []admin.BookSales
	err := getDB(ctx, r.db).Table("order_items").
		Select(`order_items.book_id, order_items.book_title AS title,
			SUM(order_items.quantity) AS sold_qty,
			SUM(order_items.quantity * order_items.price_at_purchase) AS revenue`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status <> ?", int(order.OrderStatusCancelled)).
		Group("order_items.book_id, order_items.book_title").
		Order("sold_qty DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计销量失败")
	}
	return rows, nil
}

// LowStockBooks 库存低于阈值的图书
func (r *reportRepository) LowStockBooks(ctx context.Context, threshold int, limit int) ([]admin.BookStock, error) {
	var rows []admin.BookStock
	err := getDB(ctx, r.db).Table("books").
		Select("books.id AS book_id, books.title, book_details.stock").
		Joins("JOIN book_details ON book_details.book_id = books.id").
		Where("books.deleted_at IS NULL AND book_details.stock < ?", threshold).
		Order("book_details.stock ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询低库存图书失败")
	}
	return rows, nil
}
