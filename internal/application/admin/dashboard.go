package admin

import (
	"context"
)

// ReportRepository 报表查询接口
// 报表是跨聚合的只读投影，不属于任何领域聚合，
// 接口定义在应用层，由mysql报表仓储实现
type ReportRepository interface {
	// CountOrdersByStatus 各状态订单数
	CountOrdersByStatus(ctx context.Context) (map[string]int64, error)

	// SumRevenue 已支付订单的营收总额
	SumRevenue(ctx context.Context) (int64, error)

	// CountUsers 用户总数
	CountUsers(ctx context.Context) (int64, error)

	// CountBooks 图书总数
	CountBooks(ctx context.Context) (int64, error)

	// TopSellingBooks 销量前N的图书（按订单明细数量求和）
	TopSellingBooks(ctx context.Context, limit int) ([]BookSales, error)

	// LowStockBooks 库存低于阈值的图书
	LowStockBooks(ctx context.Context, threshold int, limit int) ([]BookStock, error)
}

// BookSales 图书销量行
type BookSales struct {
	BookID  uint   `json:"book_id"`
	Title   string `json:"title"`
	SoldQty int64  `json:"sold_qty"`
	Revenue int64  `json:"revenue"`
}

// BookStock 图书库存行
type BookStock struct {
	BookID uint   `json:"book_id"`
	Title  string `json:"title"`
	Stock  int    `json:"stock"`
}

// DashboardUseCase 后台看板用例
// 聚合订单、营收、用户、图书等统计指标供管理页展示
type DashboardUseCase struct {
	reportRepo ReportRepository
}

// NewDashboardUseCase 创建看板用例
func NewDashboardUseCase(reportRepo ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo}
}

// DashboardResponse 看板响应
type DashboardResponse struct {
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	TotalOrders    int64            `json:"total_orders"`
	Revenue        int64            `json:"revenue"`
	TotalUsers     int64            `json:"total_users"`
	TotalBooks     int64            `json:"total_books"`
	TopSelling     []BookSales      `json:"top_selling"`
	LowStock       []BookStock      `json:"low_stock"`
}

// Execute 执行统计
func (uc *DashboardUseCase) Execute(ctx context.Context) (*DashboardResponse, error) {
	byStatus, err := uc.reportRepo.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	var totalOrders int64
	for _, n := range byStatus {
		totalOrders += n
	}

	revenue, err := uc.reportRepo.SumRevenue(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.reportRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	books, err := uc.reportRepo.CountBooks(ctx)
	if err != nil {
		return nil, err
	}
	topSelling, err := uc.reportRepo.TopSellingBooks(ctx, 10)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.reportRepo.LowStockBooks(ctx, 5, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		OrdersByStatus: byStatus,
		TotalOrders:    totalOrders,
		Revenue:        revenue,
		TotalUsers:     users,
		TotalBooks:     books,
		TopSelling:     topSelling,
		LowStock:       lowStock,
	}, nil
}
