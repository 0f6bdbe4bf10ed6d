package order

import "context"

// ListParams 订单列表查询参数
// UserID为0时不过滤用户(后台全量视图);Status为nil时不过滤状态
type ListParams struct {
	UserID   uint
	Status   *OrderStatus
	Page     int
	PageSize int
}

// Repository 订单仓储接口
// 设计说明:
// 1. Create在同一事务内持久化订单、明细与支付单(通过TxManager传递事务)
// 2. FindByID总是预加载Items与Payment,订单是整体读取的聚合
// 3. UpdateStatus使用乐观锁CAS,版本不匹配返回errors.ErrVersionConflict
type Repository interface {
	// Create 创建订单(含明细与支付单)
	Create(ctx context.Context, o *Order) error

	// FindByID 根据ID查询订单(预加载明细与支付单)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// List 分页查询订单,按创建时间倒序
	List(ctx context.Context, params ListParams) ([]*Order, int64, error)

	// UpdateStatus 更新订单状态(CAS:WHERE id=? AND version=?)
	UpdateStatus(ctx context.Context, o *Order) error

	// UpdatePayment 更新支付单状态
	UpdatePayment(ctx context.Context, p *Payment) error
}
