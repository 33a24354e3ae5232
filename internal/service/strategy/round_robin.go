package strategy

import (
	"sync/atomic"

	"gitee.com/flycash/easy-sms/internal/domain"
)

var _ Strategy = (*RoundRobinStrategy)(nil)

// RoundRobinStrategy 轮询策略，每次调用把起始网关向后移动一位，其余网关保持相对顺序。
// 有状态：计数器在所有发送之间共享，使用原子操作保证并发安全。
type RoundRobinStrategy struct {
	count int64 // 轮询计数器
}

func NewRoundRobinStrategy() *RoundRobinStrategy {
	return &RoundRobinStrategy{}
}

func (r *RoundRobinStrategy) Apply(gateways domain.ResolvedGateways) []string {
	names := gateways.Names()
	n := len(names)
	if n == 0 {
		return names
	}

	// 原子操作获取并递增计数，确保均匀分配负载
	current := atomic.AddInt64(&r.count, 1) - 1

	res := make([]string, 0, n)
	for i := 0; i < n; i++ {
		idx := (int(current%int64(n)) + i) % n
		res = append(res, names[idx])
	}
	return res
}
