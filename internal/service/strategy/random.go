package strategy

import (
	"math/rand"
	"sync"
	"time"

	"gitee.com/flycash/easy-sms/internal/domain"
)

var _ Strategy = (*RandomStrategy)(nil)

// RandomStrategy 随机打乱网关顺序
type RandomStrategy struct {
	mu   sync.Mutex // rand.Rand 不是并发安全的
	rand *rand.Rand
}

func NewRandomStrategy() *RandomStrategy {
	return NewRandomStrategyWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewRandomStrategyWithSource 使用指定的随机源，方便测试
func NewRandomStrategyWithSource(source rand.Source) *RandomStrategy {
	return &RandomStrategy{rand: rand.New(source)}
}

func (r *RandomStrategy) Apply(gateways domain.ResolvedGateways) []string {
	names := gateways.Names()
	r.mu.Lock()
	r.rand.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
	r.mu.Unlock()
	return names
}
