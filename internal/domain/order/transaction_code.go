package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateTransactionCode 生成交易码
// 格式: TXN-20060102-8位UUID片段,如 TXN-20250828-A1B2C3D4
// 日期前缀便于对账时按天检索,UUID片段保证唯一性
func GenerateTransactionCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("TXN-%s-%s", time.Now().Format("20060102"), id[:8])
}
