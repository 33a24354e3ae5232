package messenger

import (
	"gitee.com/flycash/easy-sms/internal/service/strategy"
	"github.com/ecodeclub/ekit/bean/option"
	"github.com/gotomicro/ego/core/elog"
)

// IDGenerator 生成每次发送的唯一标识，*sonyflake.Sonyflake 满足该接口
type IDGenerator interface {
	NextID() (uint64, error)
}

// WithStrategy 指定网关选择策略，默认按顺序
func WithStrategy(s strategy.Strategy) option.Option[Messenger] {
	return func(m *Messenger) {
		m.strategy = s
	}
}

// WithParallel 并发调用各个网关，结果仍然按照策略给出的顺序排列
func WithParallel() option.Option[Messenger] {
	return func(m *Messenger) {
		m.parallel = true
	}
}

// WithIDGenerator 指定发送ID生成器，不指定时ID为0
func WithIDGenerator(gen IDGenerator) option.Option[Messenger] {
	return func(m *Messenger) {
		m.idGenerator = gen
	}
}

func WithLogger(logger *elog.Component) option.Option[Messenger] {
	return func(m *Messenger) {
		m.logger = logger
	}
}
