package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	checkoutUseCase     *apporder.CheckoutUseCase
	listOrdersUseCase   *apporder.ListOrdersUseCase
	getOrderUseCase     *apporder.GetOrderUseCase
	cancelOrderUseCase  *apporder.CancelOrderUseCase
	updateStatusUseCase *apporder.UpdateStatusUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	checkoutUseCase *apporder.CheckoutUseCase,
	listOrdersUseCase *apporder.ListOrdersUseCase,
	getOrderUseCase *apporder.GetOrderUseCase,
	cancelOrderUseCase *apporder.CancelOrderUseCase,
	updateStatusUseCase *apporder.UpdateStatusUseCase,
) *OrderHandler {
	return &OrderHandler{
		checkoutUseCase:     checkoutUseCase,
		listOrdersUseCase:   listOrdersUseCase,
		getOrderUseCase:     getOrderUseCase,
		cancelOrderUseCase:  cancelOrderUseCase,
		updateStatusUseCase: updateStatusUseCase,
	}
}

// Checkout 结算下单
// @Summary      结算下单
// @Description  从购物车创建订单，任一商品库存不足则整单失败
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CheckoutRequest true "结算信息"
// @Success      200 {object} response.Response{data=apporder.CheckoutResponse}
// @Failure      400 {object} response.Response "购物车为空或库存不足"
// @Router       /api/v1/orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)
	result, err := h.checkoutUseCase.Execute(c.Request.Context(), apporder.CheckoutRequest{
		UserID:          userID,
		ItemIDs:         req.ItemIDs,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListMyOrders 我的订单列表
// @Summary      我的订单列表
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "状态过滤：PENDING | SHIPPED | DELIVERED | CANCELLED"
// @Param        page query int false "页码"
// @Param        page_size query int false "每页大小"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)
	page, pageSize := normalizePage(req.Page, req.PageSize)
	list, total, err := h.listOrdersUseCase.Execute(c.Request.Context(), apporder.ListOrdersRequest{
		UserID:   userID,
		Status:   req.Status,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, list, total, page, pageSize)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Description  只能查看自己的订单，管理员可查看任意订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.GetOrderResponse}
// @Failure      401 {object} response.Response "非订单所有者"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := middleware.MustGetUserID(c)
	result, err := h.getOrderUseCase.Execute(c.Request.Context(), userID, orderID, middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelOrder 取消订单
// @Summary      取消订单
// @Description  仅PENDING状态可取消，取消后恢复库存
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "订单状态不可取消"
// @Router       /api/v1/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := middleware.MustGetUserID(c)
	if err := h.cancelOrderUseCase.Execute(c.Request.Context(), userID, orderID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "订单已取消")
}

// ListAllOrders 全部订单列表（后台）
// @Summary      全部订单列表
// @Tags         后台
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "状态过滤"
// @Param        page query int false "页码"
// @Param        page_size query int false "每页大小"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/admin/orders [get]
func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	list, total, err := h.listOrdersUseCase.Execute(c.Request.Context(), apporder.ListOrdersRequest{
		UserID:   0, // 不过滤用户
		Status:   req.Status,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, list, total, page, pageSize)
}

// GetOrderAdmin 订单详情（后台）
// @Summary      订单详情（后台）
// @Tags         后台
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.GetOrderResponse}
// @Router       /api/v1/admin/orders/{id} [get]
func (h *OrderHandler) GetOrderAdmin(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := middleware.MustGetUserID(c)
	result, err := h.getOrderUseCase.Execute(c.Request.Context(), userID, orderID, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateOrderStatus 更新订单状态（后台）
// @Summary      更新订单状态
// @Description  按状态机流转：PENDING→SHIPPED→DELIVERED，PENDING→CANCELLED
// @Tags         后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "非法状态流转"
// @Router       /api/v1/admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	err := h.updateStatusUseCase.Execute(c.Request.Context(), apporder.UpdateStatusRequest{
		OrderID: orderID,
		Status:  req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "订单状态已更新")
}
