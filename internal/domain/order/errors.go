package order

import "github.com/xiebiao/bookshop/pkg/errors"

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New(errors.ErrCodeOrderNotFound, "订单不存在")

	// ErrNotOrderOwner 无权操作他人订单
	ErrNotOrderOwner = errors.New(errors.ErrCodeUnauthorized, "无权操作此订单")

	// ErrInvalidStatus 未知订单状态码
	ErrInvalidStatus = errors.New(errors.ErrCodeInvalidParams, "订单状态不合法")

	// ErrInvalidStatusTransition 非法状态跳转
	ErrInvalidStatusTransition = errors.New(errors.ErrCodeInvalidOrderStatus, "当前状态不允许此操作")

	// ErrOrderNotCancellable 仅待处理订单可取消
	ErrOrderNotCancellable = errors.New(errors.ErrCodeInvalidOrderStatus, "仅待处理订单可取消")

	// ErrInvalidPaymentMethod 不支持的支付方式
	ErrInvalidPaymentMethod = errors.New(errors.ErrCodeInvalidParams, "不支持的支付方式")

	// ErrEmptyOrder 结算明细为空
	ErrEmptyOrder = errors.New(errors.ErrCodeEmptyCart, "购物车为空,无法结算")
)
