package order

import (
	"fmt"

	"github.com/unibookshop/unibookshop/internal/domain/book"
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// insufficientStockError 带书名与可用量的库存不足错误
// 预检阶段能说清是哪本书不够；事务内的条件扣减失败只有通用错误
func insufficientStockError(b *book.Book, want int) error {
	return apperrors.New(apperrors.ErrCodeInsufficientStock,
		fmt.Sprintf("《%s》库存不足，当前库存%d，需要%d", b.Title, b.StockQuantity, want))
}
