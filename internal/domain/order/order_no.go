package order

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNumber 生成业务订单号
//
// 格式：UBS-<毫秒时间戳后8位>-<3位随机数>
// 示例：UBS-45213987-042
//
// 说明：时间截断+随机后缀只是尽力而为的防冲突，不保证全局唯一——
// 真正的唯一性由orders.order_number的唯一索引兜底，
// 撞号时插入失败并以重复记录错误上抛，绝不静默接受。
func GenerateOrderNumber() string {
	ms := fmt.Sprintf("%d", time.Now().UnixMilli())
	return fmt.Sprintf("UBS-%s-%03d", ms[len(ms)-8:], rand.Intn(1000))
}
