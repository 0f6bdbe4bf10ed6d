package order

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/user"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// TxManager 事务边界
// 生产实现为mysql.TxManager，fn返回error时整个事务回滚
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CheckoutUseCase 购物车结算用例
// 这是整个项目最核心的用例：涉及事务、并发扣库存、价格快照
//
// 防超卖设计：
// 结算先做一轮快速失败校验（读库存、不加锁），任何一项不足则整单拒绝；
// 事务内的实际扣减使用条件UPDATE（WHERE stock - ? >= 0），
// 并发下后提交的事务扣减行数为0，触发回滚，订单不会落库。
// 相比SELECT FOR UPDATE，条件扣减不持有行锁等待，吞吐更高。
type CheckoutUseCase struct {
	cartRepo  cart.Repository
	bookRepo  book.Repository
	orderRepo order.Repository
	userRepo  user.Repository
	txManager TxManager
	publisher *mq.Publisher
}

// NewCheckoutUseCase 创建结算用例
func NewCheckoutUseCase(
	cartRepo cart.Repository,
	bookRepo book.Repository,
	orderRepo order.Repository,
	userRepo user.Repository,
	txManager TxManager,
	publisher *mq.Publisher,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		cartRepo:  cartRepo,
		bookRepo:  bookRepo,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		txManager: txManager,
		publisher: publisher,
	}
}

// CheckoutRequest 结算请求DTO
type CheckoutRequest struct {
	UserID          uint
	ItemIDs         string // 参与结算的购物车条目ID，逗号分隔；空串表示整车结算
	PaymentMethod   string // COD | QR
	ShippingAddress string // 为空时使用用户档案中的默认地址
}

// CheckoutResponse 结算响应DTO
type CheckoutResponse struct {
	OrderID         uint   `json:"order_id"`
	Total           int64  `json:"total"`
	Status          string `json:"status"`
	PaymentMethod   string `json:"payment_method"`
	TransactionCode string `json:"transaction_code"`
	CreatedAt       string `json:"created_at"`
}

// Execute 执行结算
// 流程：
// 1. 加载购物车，空车拒绝
// 2. 按条目ID过滤结算子集（全不匹配视为无有效条目）
// 3. 校验支付方式
// 4. 快速失败库存校验 + 按当前价累计总额（任何一项不足整单中止）
// 5. 事务内：创建订单（明细快照价格与书名）、逐项条件扣库存、创建支付单
// 6. 提交后发布order.created事件（尽力而为，失败只记日志）
//
// 注意：结算成功后不清空购物车条目，用户可回车重购
func (uc *CheckoutUseCase) Execute(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	start := time.Now()
	defer func() {
		if metrics.CheckoutDuration != nil {
			metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
		}
	}()

	// 1. 加载购物车
	c, err := uc.cartRepo.GetOrCreateByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		markRejected("empty_cart")
		return nil, cart.ErrEmptyCart
	}

	// 2. 过滤结算子集
	items, err := filterItems(c.Items, req.ItemIDs)
	if err != nil {
		markRejected("invalid_items")
		return nil, err
	}

	// 3. 校验支付方式
	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		markRejected("invalid_payment")
		return nil, err
	}

	// 4. 收货地址：请求优先，缺省回退用户档案
	buyer, err := uc.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	address := strings.TrimSpace(req.ShippingAddress)
	if address == "" {
		address = buyer.Address
	}
	if address == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "收货地址不能为空")
	}

	// 5. 快速失败校验：批量读库存，累计总额
	bookIDs := make([]uint, 0, len(items))
	for _, item := range items {
		bookIDs = append(bookIDs, item.BookID)
	}
	bookMap, err := uc.bookRepo.FindByIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}

	var total int64
	orderItems := make([]order.OrderItem, 0, len(items))
	for _, item := range items {
		b, ok := bookMap[item.BookID]
		if !ok {
			return nil, book.ErrBookNotFound
		}
		if !b.InStock() {
			markRejected("out_of_stock")
			return nil, apperrors.Newf(apperrors.ErrCodeOutOfStock, "《%s》已无货", b.Title)
		}
		if item.Quantity > b.Stock {
			markRejected("insufficient_stock")
			return nil, apperrors.Newf(apperrors.ErrCodeInsufficientStock,
				"《%s》库存不足，当前库存:%d，需要:%d", b.Title, b.Stock, item.Quantity)
		}
		// 快照当前价格与书名，后续改价/删书不影响历史订单
		orderItems = append(orderItems, order.OrderItem{
			BookID:          item.BookID,
			BookTitle:       b.Title,
			Quantity:        item.Quantity,
			PriceAtPurchase: b.Price,
		})
		total += b.Price * int64(item.Quantity)
	}

	// 6. 事务内落库：订单+明细+支付单+扣库存，要么全成功要么全回滚
	newOrder := order.NewOrder(req.UserID, address, orderItems, total)
	newOrder.Payment = order.NewPayment(method)

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}

		// 条件扣减：并发下扣减失败（行数为0）返回ErrInsufficientStock，
		// 事务整体回滚，已创建的订单一并撤销
		for _, item := range items {
			if err := uc.bookRepo.DecrementStock(txCtx, item.BookID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeInsufficientStock) {
			markRejected("insufficient_stock")
		}
		return nil, err
	}

	if metrics.OrdersCreatedTotal != nil {
		metrics.OrdersCreatedTotal.Inc()
	}

	// 7. 提交后发布事件，驱动订单确认邮件
	uc.publishCreated(newOrder, buyer.Email)

	return &CheckoutResponse{
		OrderID:         newOrder.ID,
		Total:           newOrder.Total,
		Status:          newOrder.Status.String(),
		PaymentMethod:   newOrder.Payment.Method.String(),
		TransactionCode: newOrder.Payment.TransactionCode,
		CreatedAt:       newOrder.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// publishCreated 发布下单事件（消息队列不可用时降级为仅记日志）
func (uc *CheckoutUseCase) publishCreated(o *order.Order, email string) {
	if uc.publisher == nil {
		return
	}
	event := mq.OrderEvent{
		OrderID:    o.ID,
		UserID:     o.UserID,
		UserEmail:  email,
		Total:      o.Total,
		OccurredAt: o.CreatedAt.Unix(),
	}
	if err := uc.publisher.Publish(mq.RoutingKeyOrderCreated, event); err != nil {
		log.Printf("[checkout] 发布下单事件失败 order_id=%d: %v", o.ID, err)
	}
}

// filterItems 按逗号分隔的条目ID过滤结算子集
// 空串返回整车；过滤后为空返回参数错误
func filterItems(all []cart.CartItem, raw string) ([]cart.CartItem, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return all, nil
	}

	wanted := make(map[uint]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "购物车条目ID格式错误")
		}
		wanted[uint(id)] = true
	}

	selected := make([]cart.CartItem, 0, len(wanted))
	for _, item := range all {
		if wanted[item.ID] {
			selected = append(selected, item)
		}
	}
	if len(selected) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "未选中任何有效的购物车条目")
	}
	return selected, nil
}

// markRejected 记录结算拒绝原因（指标未初始化时跳过，便于单元测试）
func markRejected(reason string) {
	if metrics.CheckoutRejectedTotal != nil {
		metrics.CheckoutRejectedTotal.WithLabelValues(reason).Inc()
	}
}
