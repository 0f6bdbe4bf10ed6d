package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// GetOrderUseCase 订单详情用例
type GetOrderUseCase struct {
	orderRepo order.Repository
}

// NewGetOrderUseCase 创建订单详情用例
func NewGetOrderUseCase(orderRepo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

// OrderItemInfo 订单明细项
type OrderItemInfo struct {
	BookID          uint   `json:"book_id"`
	BookTitle       string `json:"book_title"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase int64  `json:"price_at_purchase"`
	Subtotal        int64  `json:"subtotal"`
}

// PaymentInfo 支付单信息
type PaymentInfo struct {
	Method          string `json:"method"`
	Status          string `json:"status"`
	TransactionCode string `json:"transaction_code"`
	PaidAt          string `json:"paid_at,omitempty"`
}

// GetOrderResponse 订单详情响应
type GetOrderResponse struct {
	OrderID         uint            `json:"order_id"`
	Total           int64           `json:"total"`
	Status          string          `json:"status"`
	ShippingAddress string          `json:"shipping_address"`
	Items           []OrderItemInfo `json:"items"`
	Payment         *PaymentInfo    `json:"payment,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

// Execute 执行查询
// viewerID为请求用户；admin为true时跳过所有权校验（后台视角）
func (uc *GetOrderUseCase) Execute(ctx context.Context, viewerID, orderID uint, admin bool) (*GetOrderResponse, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !admin && !o.IsOwnedBy(viewerID) {
		return nil, order.ErrNotOrderOwner
	}

	items := make([]OrderItemInfo, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemInfo{
			BookID:          item.BookID,
			BookTitle:       item.BookTitle,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
			Subtotal:        item.PriceAtPurchase * int64(item.Quantity),
		})
	}

	resp := &GetOrderResponse{
		OrderID:         o.ID,
		Total:           o.Total,
		Status:          o.Status.String(),
		ShippingAddress: o.ShippingAddress,
		Items:           items,
		CreatedAt:       o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if o.Payment != nil {
		info := &PaymentInfo{
			Method:          o.Payment.Method.String(),
			Status:          o.Payment.Status.String(),
			TransactionCode: o.Payment.TransactionCode,
		}
		if o.Payment.PaidAt != nil {
			info.PaidAt = o.Payment.PaidAt.Format("2006-01-02 15:04:05")
		}
		resp.Payment = info
	}
	return resp, nil
}
