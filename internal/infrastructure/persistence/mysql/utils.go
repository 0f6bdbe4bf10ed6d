package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码:
// - 1062: Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 兼容检查:错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}

// isForeignKeyError 判断是否为MySQL外键约束冲突错误
// MySQL错误码:
// - 1451: Cannot delete or update a parent row
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(err.Error(), "a foreign key constraint fails")
}
