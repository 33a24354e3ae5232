package gateway

import (
	"fmt"
	"sync"

	"gitee.com/flycash/easy-sms/internal/config"
	"gitee.com/flycash/easy-sms/internal/errs"
	"github.com/ecodeclub/ekit/syncx"
)

var _ Registry = (*DefaultRegistry)(nil)

// DefaultRegistry 按名称注册网关的创建方法，第一次使用时创建并缓存网关实例
type DefaultRegistry struct {
	store config.Store

	creators syncx.Map[string, Creator]
	gateways syncx.Map[string, Gateway]

	mu         sync.Mutex // 保护创建过程和 decorators
	decorators []Decorator
}

// NewRegistry 创建网关注册中心
func NewRegistry(store config.Store) *DefaultRegistry {
	return &DefaultRegistry{store: store}
}

// Extend 注册或者替换网关的创建方法，已经创建过的实例会被丢弃
func (r *DefaultRegistry) Extend(name string, creator Creator) *DefaultRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creators.Store(name, creator)
	r.gateways.Delete(name)
	return r
}

// Use 添加装饰器，只对之后创建的网关生效
func (r *DefaultRegistry) Use(decorators ...Decorator) *DefaultRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decorators = append(r.decorators, decorators...)
	return r
}

func (r *DefaultRegistry) Resolve(name string) (Gateway, error) {
	if g, ok := r.gateways.Load(name); ok {
		return g, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// double check
	if g, ok := r.gateways.Load(name); ok {
		return g, nil
	}

	creator, ok := r.creators.Load(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrGatewayNotFound, name)
	}
	g, err := creator(r.store)
	if err != nil {
		return nil, fmt.Errorf("%w: 创建网关 %s 失败: %w", errs.ErrInvalidConfig, name, err)
	}
	for _, d := range r.decorators {
		g = d(g)
	}
	r.gateways.Store(name, g)
	return g, nil
}
