package order

import (
	"context"
	"log"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// CancelOrderUseCase 取消订单用例
// 业务规则：
// 1. 仅PENDING订单可取消，且必须是订单本人
// 2. 按明细逐项返还库存（数量与下单时扣减的完全一致）
// 3. 支付单为PENDING时标记FAILED
// 4. 取消与返还在同一事务内，失败整体回滚
type CancelOrderUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	userRepo  user.Repository
	txManager TxManager
	publisher *mq.Publisher
}

// NewCancelOrderUseCase 创建取消订单用例
func NewCancelOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	userRepo user.Repository,
	txManager TxManager,
	publisher *mq.Publisher,
) *CancelOrderUseCase {
	return &CancelOrderUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		userRepo:  userRepo,
		txManager: txManager,
		publisher: publisher,
	}
}

// Execute 执行取消
func (uc *CancelOrderUseCase) Execute(ctx context.Context, userID, orderID uint) error {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !o.IsOwnedBy(userID) {
		return order.ErrNotOrderOwner
	}
	if o.Status != order.OrderStatusPending {
		return order.ErrOrderNotCancellable
	}

	if err := o.Cancel(); err != nil {
		return err
	}

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 状态走CAS，并发取消/发货只有一方成功
		if err := uc.orderRepo.UpdateStatus(txCtx, o); err != nil {
			return err
		}

		// 返还库存：逐项加回下单时扣减的数量
		for _, item := range o.Items {
			if err := uc.bookRepo.IncrementStock(txCtx, item.BookID, item.Quantity); err != nil {
				return err
			}
		}

		// 未支付的支付单标记失效
		if o.Payment != nil && o.Payment.Status == order.PaymentStatusPending {
			o.Payment.MarkFailed()
			if err := uc.orderRepo.UpdatePayment(txCtx, o.Payment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if metrics.OrdersCancelledTotal != nil {
		metrics.OrdersCancelledTotal.Inc()
	}
	uc.publishCancelled(ctx, o)
	return nil
}

// publishCancelled 发布取消事件（驱动取消通知邮件）
func (uc *CancelOrderUseCase) publishCancelled(ctx context.Context, o *order.Order) {
	if uc.publisher == nil {
		return
	}
	buyer, err := uc.userRepo.FindByID(ctx, o.UserID)
	if err != nil {
		log.Printf("[cancel_order] 查询买家失败 order_id=%d: %v", o.ID, err)
		return
	}
	event := mq.OrderEvent{
		OrderID:    o.ID,
		UserID:     o.UserID,
		UserEmail:  buyer.Email,
		Total:      o.Total,
		OccurredAt: o.UpdatedAt.Unix(),
	}
	if err := uc.publisher.Publish(mq.RoutingKeyOrderCancelled, event); err != nil {
		log.Printf("[cancel_order] 发布取消事件失败 order_id=%d: %v", o.ID, err)
	}
}
