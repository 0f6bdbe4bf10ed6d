package cart

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrCartItemNotFound 购物车项不存在
	ErrCartItemNotFound = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车项不存在")

	// ErrNotItemOwner 购物车项不属于当前用户
	ErrNotItemOwner = apperrors.New(apperrors.ErrCodeForbidden, "无权操作此购物车项")

	// ErrInvalidQuantity 数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrEmptyCart 购物车为空
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeEmptyCart, "购物车为空，无法结算")
)
