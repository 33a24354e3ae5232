package gateway

import (
	"context"

	"gitee.com/flycash/easy-sms/internal/config"
	"gitee.com/flycash/easy-sms/internal/domain"
)

// Gateway 短信网关
//
//go:generate mockgen -source=./types.go -destination=./mocks/gateway.mock.go -package=gatewaymocks -typed Gateway
type Gateway interface {
	// Name 网关名称，与配置中 gateways.<name> 对应
	Name() string
	// Send 发送消息，投递失败时返回 *errs.GatewayError
	Send(ctx context.Context, to []string, msg domain.Message, settings domain.Settings) (domain.SendResponse, error)
}

// Registry 根据名称查找网关
type Registry interface {
	// Resolve 名称未知时返回 errs.ErrGatewayNotFound
	Resolve(name string) (Gateway, error)
}

// Creator 创建网关，可以从全局配置中读取超时之类的公共配置
type Creator func(store config.Store) (Gateway, error)

// Decorator 网关装饰器，例如链路追踪、指标、熔断
type Decorator func(g Gateway) Gateway
