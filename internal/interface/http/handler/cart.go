package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	getCartUseCase    *appcart.GetCartUseCase
	addItemUseCase    *appcart.AddItemUseCase
	updateItemUseCase *appcart.UpdateItemUseCase
	removeItemUseCase *appcart.RemoveItemUseCase
	itemCountUseCase  *appcart.ItemCountUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(
	getCartUseCase *appcart.GetCartUseCase,
	addItemUseCase *appcart.AddItemUseCase,
	updateItemUseCase *appcart.UpdateItemUseCase,
	removeItemUseCase *appcart.RemoveItemUseCase,
	itemCountUseCase *appcart.ItemCountUseCase,
) *CartHandler {
	return &CartHandler{
		getCartUseCase:    getCartUseCase,
		addItemUseCase:    addItemUseCase,
		updateItemUseCase: updateItemUseCase,
		removeItemUseCase: removeItemUseCase,
		itemCountUseCase:  itemCountUseCase,
	}
}

// GetCart 查看购物车
// @Summary      查看购物车
// @Description  返回明细、总件数与按当前价计算的总额
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcart.GetCartResponse}
// @Router       /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.getCartUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  同一本书重复加购时累加数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "图书与数量"
// @Success      200 {object} response.Response{data=appcart.AddItemResponse}
// @Failure      400 {object} response.Response "库存不足或商品无货"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)
	result, err := h.addItemUseCase.Execute(c.Request.Context(), appcart.AddItemRequest{
		UserID:   userID,
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateItem 修改条目数量
// @Summary      修改购物车条目数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "条目ID"
// @Param        request body dto.UpdateCartItemRequest true "新数量"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/v1/cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)
	err := h.updateItemUseCase.Execute(c.Request.Context(), appcart.UpdateItemRequest{
		UserID:   userID,
		ItemID:   itemID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "数量已更新")
}

// RemoveItem 移除条目
// @Summary      移除购物车条目
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "条目ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := middleware.MustGetUserID(c)
	if err := h.removeItemUseCase.Execute(c.Request.Context(), userID, itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "条目已移除")
}

// ItemCount 购物车件数
// @Summary      购物车总件数（角标）
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/cart/count [get]
func (h *CartHandler) ItemCount(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	count, err := h.itemCountUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"count": count})
}
