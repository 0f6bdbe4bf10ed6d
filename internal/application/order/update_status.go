package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/order"
)

// UpdateStatusUseCase 订单状态更新用例（后台管理）
// 状态机：PENDING→{SHIPPED,CANCELLED}；SHIPPED→DELIVERED；终态不可变
// 特殊规则：
// 1. 后台取消PENDING订单时同样返还库存、作废支付单（与用户取消一致）
// 2. 转入DELIVERED时，货到付款(COD)的待支付单自动标记已支付
type UpdateStatusUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	txManager TxManager
}

// NewUpdateStatusUseCase 创建状态更新用例
func NewUpdateStatusUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	txManager TxManager,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
	}
}

// UpdateStatusRequest 状态更新请求
type UpdateStatusRequest struct {
	OrderID uint
	Status  string // PENDING | SHIPPED | DELIVERED | CANCELLED
}

// Execute 执行状态更新
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, req UpdateStatusRequest) error {
	target, err := order.ParseOrderStatus(req.Status)
	if err != nil {
		return err
	}

	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return err
	}

	wasCancellation := o.Status == order.OrderStatusPending && target == order.OrderStatusCancelled

	if err := o.TransitionTo(target); err != nil {
		return err
	}

	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.orderRepo.UpdateStatus(txCtx, o); err != nil {
			return err
		}

		if wasCancellation {
			for _, item := range o.Items {
				if err := uc.bookRepo.IncrementStock(txCtx, item.BookID, item.Quantity); err != nil {
					return err
				}
			}
			if o.Payment != nil && o.Payment.Status == order.PaymentStatusPending {
				o.Payment.MarkFailed()
				if err := uc.orderRepo.UpdatePayment(txCtx, o.Payment); err != nil {
					return err
				}
			}
		}

		// 送达即视为货到付款完成收款
		if target == order.OrderStatusDelivered &&
			o.Payment != nil &&
			o.Payment.Method == order.PaymentMethodCOD &&
			o.Payment.Status == order.PaymentStatusPending {
			o.Payment.MarkPaid()
			if err := uc.orderRepo.UpdatePayment(txCtx, o.Payment); err != nil {
				return err
			}
		}
		return nil
	})
}
