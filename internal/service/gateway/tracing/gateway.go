package tracing

import (
	"context"
	"strings"

	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/service/gateway"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "easy-sms/gateway"

var _ gateway.Gateway = (*Gateway)(nil)

// Gateway 为网关添加链路追踪的装饰器
type Gateway struct {
	gateway gateway.Gateway
	tracer  trace.Tracer
}

// NewGateway 使用全局的 TracerProvider
func NewGateway(g gateway.Gateway) *Gateway {
	return &Gateway{
		gateway: g,
		tracer:  otel.Tracer(instrumentationName),
	}
}

// NewDecorator 返回注册中心使用的装饰器，tp 为 nil 时使用全局的 TracerProvider
func NewDecorator(tp trace.TracerProvider) gateway.Decorator {
	return func(g gateway.Gateway) gateway.Gateway {
		if tp == nil {
			return NewGateway(g)
		}
		return &Gateway{gateway: g, tracer: tp.Tracer(instrumentationName)}
	}
}

func (g *Gateway) Name() string {
	return g.gateway.Name()
}

func (g *Gateway) Send(ctx context.Context, to []string, msg domain.Message, settings domain.Settings) (domain.SendResponse, error) {
	ctx, span := g.tracer.Start(ctx, "Gateway.Send",
		trace.WithAttributes(
			attribute.String("sms.gateway", g.gateway.Name()),
			attribute.String("sms.type", string(msg.MessageType())),
			attribute.String("sms.template", msg.Template),
			attribute.Int("sms.receivers", len(to)),
		))
	defer span.End()

	response, err := g.gateway.Send(ctx, to, msg, settings)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			attribute.String("sms.request_id", response.RequestID),
			attribute.String("sms.message_ids", strings.ReplaceAll(response.MessageID, ",", " ")),
		)
	}

	return response, err
}
