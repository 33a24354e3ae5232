package strategy

import (
	"fmt"

	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/errs"
)

// Strategy 网关选择策略，决定本次发送尝试哪些网关以及尝试的顺序
type Strategy interface {
	// Apply 只能返回 gateways 中存在的网关名称
	Apply(gateways domain.ResolvedGateways) []string
}

const (
	NameOrder      = "order"
	NameRandom     = "random"
	NameRoundRobin = "round_robin"
	NameWeighted   = "weighted"
)

// New 根据名称创建策略，名称为空时使用顺序策略
func New(name string) (Strategy, error) {
	switch name {
	case "", NameOrder:
		return NewOrderStrategy(), nil
	case NameRandom:
		return NewRandomStrategy(), nil
	case NameRoundRobin:
		return NewRoundRobinStrategy(), nil
	case NameWeighted:
		return NewWeightedStrategy(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownStrategy, name)
	}
}
