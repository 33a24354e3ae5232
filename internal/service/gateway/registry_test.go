package gateway_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"gitee.com/flycash/easy-sms/internal/config"
	"gitee.com/flycash/easy-sms/internal/errs"
	"gitee.com/flycash/easy-sms/internal/service/gateway"
	gatewaymocks "gitee.com/flycash/easy-sms/internal/service/gateway/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDefaultRegistry_Resolve(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockGateway := gatewaymocks.NewMockGateway(ctrl)

	var created atomic.Int32
	registry := gateway.NewRegistry(config.NewStore(nil)).
		Extend("mock", func(config.Store) (gateway.Gateway, error) {
			created.Add(1)
			return mockGateway, nil
		}).
		Extend("broken", func(config.Store) (gateway.Gateway, error) {
			return nil, errors.New("缺少密钥")
		})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, err := registry.Resolve("mock")
			assert.NoError(t, err)
			assert.Same(t, mockGateway, g)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), created.Load())

	_, err := registry.Resolve("unknown")
	assert.ErrorIs(t, err, errs.ErrGatewayNotFound)
	assert.False(t, errs.IsGatewayError(err))

	_, err = registry.Resolve("broken")
	assert.ErrorIs(t, err, errs.ErrInvalidConfig)
}

type namedGateway struct {
	gateway.Gateway
	name string
}

func (n namedGateway) Name() string {
	return n.name
}

func TestDefaultRegistry_Use(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockGateway := gatewaymocks.NewMockGateway(ctrl)

	var order []string
	registry := gateway.NewRegistry(config.NewStore(nil)).
		Extend("mock", func(config.Store) (gateway.Gateway, error) {
			return mockGateway, nil
		}).
		Use(func(g gateway.Gateway) gateway.Gateway {
			order = append(order, "first")
			return namedGateway{Gateway: g, name: "first"}
		}, func(g gateway.Gateway) gateway.Gateway {
			order = append(order, "second")
			return namedGateway{Gateway: g, name: "second"}
		})

	g, err := registry.Resolve("mock")
	require.NoError(t, err)
	assert.Equal(t, "second", g.Name())
	assert.Equal(t, []string{"first", "second"}, order)

	// 重新注册之后会重新创建
	registry.Extend("mock", func(config.Store) (gateway.Gateway, error) {
		return mockGateway, nil
	})
	_, err = registry.Resolve("mock")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "first", "second"}, order)
}
