package dto

// CheckoutRequest HTTP结算请求
// item_ids为逗号分隔的购物车条目ID，空串表示整车结算
type CheckoutRequest struct {
	ItemIDs         string `json:"item_ids" binding:"omitempty,max=500" example:"1,3,5"`
	PaymentMethod   string `json:"payment_method" binding:"required,oneof=COD QR" example:"COD"`
	ShippingAddress string `json:"shipping_address" binding:"omitempty,max=500"` // 为空使用默认收货地址
}

// ListOrdersRequest HTTP订单列表请求（query参数）
type ListOrdersRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=PENDING SHIPPED DELIVERED CANCELLED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UpdateOrderStatusRequest HTTP订单状态更新请求（后台）
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING SHIPPED DELIVERED CANCELLED" example:"SHIPPED"`
}
