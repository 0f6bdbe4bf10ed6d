package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// ListOrdersUseCase 订单列表用例
// 用户侧查询自己的订单；后台UserID传0查询全量
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单列表用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ListOrdersRequest 列表请求
type ListOrdersRequest struct {
	UserID   uint   // 0表示不过滤（后台）
	Status   string // 为空不过滤
	Page     int
	PageSize int
}

// OrderSummary 订单摘要（列表行）
type OrderSummary struct {
	OrderID       uint   `json:"order_id"`
	Total         int64  `json:"total"`
	Status        string `json:"status"`
	ItemCount     int    `json:"item_count"`
	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`
	CreatedAt     string `json:"created_at"`
}

// Execute 执行查询
func (uc *ListOrdersUseCase) Execute(ctx context.Context, req ListOrdersRequest) ([]OrderSummary, int64, error) {
	params := order.ListParams{
		UserID:   req.UserID,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Status != "" {
		st, err := order.ParseOrderStatus(req.Status)
		if err != nil {
			return nil, 0, err
		}
		params.Status = &st
	}

	orders, total, err := uc.orderRepo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		s := OrderSummary{
			OrderID:   o.ID,
			Total:     o.Total,
			Status:    o.Status.String(),
			ItemCount: len(o.Items),
			CreatedAt: o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if o.Payment != nil {
			s.PaymentMethod = o.Payment.Method.String()
			s.PaymentStatus = o.Payment.Status.String()
		}
		summaries = append(summaries, s)
	}
	return summaries, total, nil
}
