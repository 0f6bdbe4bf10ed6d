package genre

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	// Create 创建分类(名称重复返回ErrGenreDuplicate)
	Create(ctx context.Context, genre *Genre) error

	// FindByID 根据ID查找分类
	FindByID(ctx context.Context, id uint) (*Genre, error)

	// List 查询全部分类(数量有限,不分页)
	List(ctx context.Context) ([]*Genre, error)

	// Update 更新分类名称
	Update(ctx context.Context, genre *Genre) error

	// Delete 删除分类(仅解除图书关联,不影响图书本身)
	Delete(ctx context.Context, id uint) error
}
