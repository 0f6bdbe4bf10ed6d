package genre

import (
	"time"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Genre 图书分类实体
// 与图书是多对多关系,关联表由图书侧维护
type Genre struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGenre 创建分类（工厂方法）
func NewGenre(name string) (*Genre, error) {
	if !isValidName(name) {
		return nil, ErrInvalidGenreName
	}
	now := time.Now()
	return &Genre{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename 重命名分类（领域行为）
func (g *Genre) Rename(name string) error {
	if !isValidName(name) {
		return ErrInvalidGenreName
	}
	g.Name = name
	g.UpdatedAt = time.Now()
	return nil
}

func isValidName(name string) bool {
	return len(name) >= 1 && len(name) <= 50
}

// 分类领域错误定义
var (
	// ErrGenreNotFound 分类不存在
	ErrGenreNotFound = apperrors.New(apperrors.ErrCodeGenreNotFound, "分类不存在")

	// ErrGenreDuplicate 分类名称已存在
	ErrGenreDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "分类名称已存在")

	// ErrInvalidGenreName 分类名称不合法
	ErrInvalidGenreName = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名称长度应为1-50个字符")
)
