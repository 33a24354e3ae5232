package strategy

import "gitee.com/flycash/easy-sms/internal/domain"

var _ Strategy = (*OrderStrategy)(nil)

// OrderStrategy 按照候选网关的顺序依次尝试，无状态
type OrderStrategy struct{}

func NewOrderStrategy() *OrderStrategy {
	return &OrderStrategy{}
}

func (o *OrderStrategy) Apply(gateways domain.ResolvedGateways) []string {
	return gateways.Names()
}
