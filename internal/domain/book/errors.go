package book

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")

	// ErrOutOfStock 商品无货
	ErrOutOfStock = apperrors.New(apperrors.ErrCodeOutOfStock, "商品已售罄")

	// ErrBookReferenced 图书仍被订单或购物车引用,禁止删除
	ErrBookReferenced = apperrors.New(apperrors.ErrCodeBookReferenced, "图书存在关联订单或购物车记录，无法删除")
)
