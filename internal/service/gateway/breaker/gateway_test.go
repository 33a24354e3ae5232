package breaker

import (
	"context"

	"testing"
	"time"

	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/errs"
	gatewaymocks "gitee.com/flycash/easy-sms/internal/service/gateway/mocks"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGateway_OpensOnDeliveryFailures(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	inner := gatewaymocks.NewMockGateway(ctrl)
	inner.EXPECT().Name().Return("aliyun").AnyTimes()
	inner.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.SendResponse{}, errs.NewGatewayError("aliyun", "isv.BUSINESS_LIMIT_CONTROL", "触发流控")).
		Times(2)

	g := NewGateway(inner, Config{ConsecutiveFailures: 2, Timeout: time.Hour})
	for i := 0; i < 2; i++ {
		_, err := g.Send(context.Background(), []string{"13800138000"}, domain.Message{}, nil)
		assert.ErrorIs(t, err, errs.ErrGatewayFailed)
	}
	assert.Equal(t, gobreaker.StateOpen, g.State())

	// 熔断期间不会再调用网关
	_, err := g.Send(context.Background(), []string{"13800138000"}, domain.Message{}, nil)
	var ge *errs.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, CodeOpen, ge.Code)
	assert.Equal(t, "aliyun", ge.Gateway)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestGateway_IgnoresNonDeliveryErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	inner := gatewaymocks.NewMockGateway(ctrl)
	inner.EXPECT().Name().Return("qcloud").AnyTimes()
	gomock.InOrder(
		inner.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.SendResponse{}, errs.ErrInvalidSettings).Times(3),
		inner.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.SendResponse{MessageID: "m1"}, nil),
	)

	g := NewDecorator(Config{ConsecutiveFailures: 1})(inner)
	for i := 0; i < 3; i++ {
		_, err := g.Send(context.Background(), []string{"13800138000"}, domain.Message{}, nil)
		assert.ErrorIs(t, err, errs.ErrInvalidSettings)
		assert.False(t, errs.IsGatewayError(err))
	}
	resp, err := g.Send(context.Background(), []string{"13800138000"}, domain.Message{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "m1", resp.MessageID)
	assert.Equal(t, gobreaker.StateClosed, g.(*Gateway).State())
}
