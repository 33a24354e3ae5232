package metrics

import (
	"context"
	"time"

	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/errs"
	"gitee.com/flycash/easy-sms/internal/service/gateway"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusErred   = "erred"
	// statusAborted 非投递错误，例如配置非法
	statusAborted = "aborted"
)

// Collector 网关发送指标，所有网关共用一组指标，用 gateway 标签区分
type Collector struct {
	sendDurationSummary *prometheus.SummaryVec
	sendCounter         *prometheus.CounterVec
	sendStatusCounter   *prometheus.CounterVec
}

// NewCollector 创建指标并注册到 reg 上
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sendDurationSummary: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "sms_gateway_send_duration_seconds",
				Help:       "网关发送短信耗时统计（秒）",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.005, 0.99: 0.001},
				MaxAge:     time.Minute * 5,
			},
			[]string{"gateway", "status"},
		),
		sendCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sms_gateway_send_total",
				Help: "网关发送短信总数",
			},
			[]string{"gateway"},
		),
		sendStatusCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sms_gateway_send_status_total",
				Help: "网关发送短信状态统计",
			},
			[]string{"gateway", "status"},
		),
	}
	reg.MustRegister(c.sendDurationSummary, c.sendCounter, c.sendStatusCounter)
	return c
}

// Decorator 返回注册中心使用的装饰器
func (c *Collector) Decorator() gateway.Decorator {
	return func(g gateway.Gateway) gateway.Gateway {
		return &Gateway{gateway: g, collector: c}
	}
}

var _ gateway.Gateway = (*Gateway)(nil)

// Gateway 为网关添加指标收集的装饰器
type Gateway struct {
	gateway   gateway.Gateway
	collector *Collector
}

func (g *Gateway) Name() string {
	return g.gateway.Name()
}

func (g *Gateway) Send(ctx context.Context, to []string, msg domain.Message, settings domain.Settings) (domain.SendResponse, error) {
	name := g.gateway.Name()
	startTime := time.Now()
	g.collector.sendCounter.WithLabelValues(name).Inc()

	response, err := g.gateway.Send(ctx, to, msg, settings)

	duration := time.Since(startTime).Seconds()
	status := statusOf(err)
	g.collector.sendStatusCounter.WithLabelValues(name, status).Inc()
	g.collector.sendDurationSummary.WithLabelValues(name, status).Observe(duration)

	return response, err
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errs.IsGatewayError(err):
		return statusErred
	default:
		return statusAborted
	}
}
