package breaker

import (
	"context"
	"errors"
	"time"

	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/errs"
	"gitee.com/flycash/easy-sms/internal/service/gateway"
	"github.com/gotomicro/ego/core/elog"
	"github.com/sony/gobreaker"
)

// CodeOpen 熔断期间返回的错误码
const CodeOpen = "circuit_open"

// Config 熔断配置，零值字段使用 gobreaker 的默认值
type Config struct {
	MaxRequests uint32        `yaml:"maxRequests"`
	Interval    time.Duration `yaml:"interval"`
	Timeout     time.Duration `yaml:"timeout"`
	// ConsecutiveFailures 连续投递失败多少次之后熔断
	ConsecutiveFailures uint32 `yaml:"consecutiveFailures"`
}

var _ gateway.Gateway = (*Gateway)(nil)

// Gateway 熔断装饰器。只有网关投递失败才计入失败次数，配置错误之类的问题不会触发熔断。
type Gateway struct {
	gateway gateway.Gateway
	cb      *gobreaker.CircuitBreaker
}

func NewGateway(g gateway.Gateway, cfg Config) *Gateway {
	logger := elog.DefaultLogger
	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}
	return &Gateway{
		gateway: g,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        g.Name(),
			MaxRequests: cfg.MaxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warn("网关熔断状态变化",
					elog.String("gateway", name),
					elog.String("from", from.String()),
					elog.String("to", to.String()),
				)
			},
			IsSuccessful: func(err error) bool {
				return err == nil || !errs.IsGatewayError(err)
			},
		}),
	}
}

// NewDecorator 每个网关使用独立的熔断器
func NewDecorator(cfg Config) gateway.Decorator {
	return func(g gateway.Gateway) gateway.Gateway {
		return NewGateway(g, cfg)
	}
}

func (g *Gateway) Name() string {
	return g.gateway.Name()
}

func (g *Gateway) Send(ctx context.Context, to []string, msg domain.Message, settings domain.Settings) (domain.SendResponse, error) {
	res, err := g.cb.Execute(func() (interface{}, error) {
		return g.gateway.Send(ctx, to, msg, settings)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		ge := errs.WrapGatewayError(g.gateway.Name(), err)
		ge.Code = CodeOpen
		return domain.SendResponse{}, ge
	}
	resp, _ := res.(domain.SendResponse)
	return resp, err
}

// State 当前熔断状态
func (g *Gateway) State() gobreaker.State {
	return g.cb.State()
}
