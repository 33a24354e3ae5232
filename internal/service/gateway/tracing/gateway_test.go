package tracing

import (
	"context"

	"testing"

	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/errs"
	gatewaymocks "gitee.com/flycash/easy-sms/internal/service/gateway/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
)

func TestGateway_Send(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		resp       domain.SendResponse
		err        error
		wantStatus codes.Code
	}{
		{
			name:       "发送成功",
			resp:       domain.SendResponse{RequestID: "req-1", MessageID: "m1"},
			wantStatus: codes.Unset,
		},
		{
			name:       "发送失败",
			err:        errs.NewGatewayError("aliyun", "isv.BUSINESS_LIMIT_CONTROL", "触发流控"),
			wantStatus: codes.Error,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			inner := gatewaymocks.NewMockGateway(ctrl)
			inner.EXPECT().Name().Return("aliyun").AnyTimes()
			inner.EXPECT().Send(gomock.Any(), []string{"13800138000"}, gomock.Any(), gomock.Any()).
				Return(tc.resp, tc.err)

			recorder := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
			g := NewDecorator(tp)(inner)
			assert.Equal(t, "aliyun", g.Name())

			resp, err := g.Send(context.Background(), []string{"13800138000"}, domain.Message{Template: "SMS_1"}, nil)
			assert.Equal(t, tc.err, err)
			assert.Equal(t, tc.resp, resp)

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			span := spans[0]
			assert.Equal(t, "Gateway.Send", span.Name())
			assert.Equal(t, tc.wantStatus, span.Status().Code)
			assert.Contains(t, span.Attributes(), attribute.String("sms.gateway", "aliyun"))
			assert.Contains(t, span.Attributes(), attribute.Int("sms.receivers", 1))
		})
	}
}
