package dto

// AddCartItemRequest HTTP加购请求
type AddCartItemRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999"`
}

// UpdateCartItemRequest HTTP修改数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=999"`
}
