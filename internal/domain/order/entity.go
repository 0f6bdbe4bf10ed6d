package order

import (
	"time"
)

// OrderStatus 订单状态
// 使用int存储(节省空间,便于索引),String()输出API状态码
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 1 // 待处理
	OrderStatusShipped   OrderStatus = 2 // 已发货
	OrderStatusDelivered OrderStatus = 3 // 已送达(终态)
	OrderStatusCancelled OrderStatus = 4 // 已取消(终态)
)

// String 实现Stringer接口(API响应与日志)
func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "PENDING"
	case OrderStatusShipped:
		return "SHIPPED"
	case OrderStatusDelivered:
		return "DELIVERED"
	case OrderStatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// ParseOrderStatus 解析状态码字符串(后台状态更新接口)
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "PENDING":
		return OrderStatusPending, nil
	case "SHIPPED":
		return OrderStatusShipped, nil
	case "DELIVERED":
		return OrderStatusDelivered, nil
	case "CANCELLED":
		return OrderStatusCancelled, nil
	default:
		return 0, ErrInvalidStatus
	}
}

// PaymentMethod 支付方式
type PaymentMethod int

const (
	PaymentMethodCOD PaymentMethod = 1 // 货到付款
	PaymentMethodQR  PaymentMethod = 2 // 二维码转账
)

// String 实现Stringer接口
func (m PaymentMethod) String() string {
	switch m {
	case PaymentMethodCOD:
		return "COD"
	case PaymentMethodQR:
		return "QR"
	default:
		return "UNKNOWN"
	}
}

// ParsePaymentMethod 解析支付方式
// 非法值返回ErrInvalidPaymentMethod(结算参数校验)
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "COD":
		return PaymentMethodCOD, nil
	case "QR":
		return PaymentMethodQR, nil
	default:
		return 0, ErrInvalidPaymentMethod
	}
}

// PaymentStatus 支付状态
type PaymentStatus int

const (
	PaymentStatusPending PaymentStatus = 1 // 待支付
	PaymentStatusPaid    PaymentStatus = 2 // 已支付
	PaymentStatusFailed  PaymentStatus = 3 // 已失效
)

// String 实现Stringer接口
func (s PaymentStatus) String() string {
	switch s {
	case PaymentStatusPending:
		return "PENDING"
	case PaymentStatusPaid:
		return "PAID"
	case PaymentStatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Order 订单聚合根
// 设计说明:
// 1. OrderItem/Payment是聚合内子实体,与订单同事务持久化
// 2. Total冗余存储下单时计算的总额,明细价格是历史快照
// 3. Version为乐观锁版本号,后台状态更新通过CAS写入
type Order struct {
	ID              uint
	UserID          uint
	Total           int64       // 订单总金额(VND),下单时按快照价计算
	Status          OrderStatus // 订单状态
	ShippingAddress string      // 收货地址快照
	Items           []OrderItem
	Payment         *Payment
	Version         int // 乐观锁版本号
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem 订单明细项
// PriceAtPurchase记录下单时的单价,后续改价不影响历史订单
type OrderItem struct {
	ID              uint
	OrderID         uint
	BookID          uint
	BookTitle       string // 下单时书名快照(图书删除后订单仍可读)
	Quantity        int
	PriceAtPurchase int64
}

// Payment 支付单(与订单一对一)
type Payment struct {
	ID              uint
	OrderID         uint
	Method          PaymentMethod
	Status          PaymentStatus
	TransactionCode string // 生成的交易码
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder 创建新订单(工厂方法)
// 初始状态PENDING,支付单由调用方附加
func NewOrder(userID uint, shippingAddress string, items []OrderItem, total int64) *Order {
	now := time.Now()
	return &Order{
		UserID:          userID,
		Total:           total,
		Status:          OrderStatusPending,
		ShippingAddress: shippingAddress,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NewPayment 创建支付单(状态PENDING,交易码自动生成)
func NewPayment(method PaymentMethod) *Payment {
	now := time.Now()
	return &Payment{
		Method:          method,
		Status:          PaymentStatusPending,
		TransactionCode: GenerateTransactionCode(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// CanTransitionTo 检查是否可以转换到目标状态
// 状态机:PENDING→{SHIPPED,CANCELLED}; SHIPPED→DELIVERED; 终态不可变
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPending:   {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped:   {OrderStatusDelivered},
		OrderStatusDelivered: {}, // 终态
		OrderStatusCancelled: {}, // 终态
	}

	allowed, exists := transitions[o.Status]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态转换,非法跳转返回ErrInvalidStatusTransition
func (o *Order) TransitionTo(target OrderStatus) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel 取消订单(领域行为,仅PENDING可取消)
func (o *Order) Cancel() error {
	return o.TransitionTo(OrderStatusCancelled)
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}

// CalculateTotal 按明细快照价重算总额(创建时自检)
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.PriceAtPurchase * int64(item.Quantity)
	}
	return total
}

// MarkPaid 标记支付单已支付
func (p *Payment) MarkPaid() {
	now := time.Now()
	p.Status = PaymentStatusPaid
	p.PaidAt = &now
	p.UpdatedAt = now
}

// MarkFailed 标记支付单失效(订单取消时PENDING→FAILED)
func (p *Payment) MarkFailed() {
	p.Status = PaymentStatusFailed
	p.UpdatedAt = time.Now()
}
