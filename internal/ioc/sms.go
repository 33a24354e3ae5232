package ioc

import (
	"gitee.com/flycash/easy-sms/internal/config"
	"gitee.com/flycash/easy-sms/internal/service/gateway"
	"gitee.com/flycash/easy-sms/internal/service/gateway/aliyun"
	"gitee.com/flycash/easy-sms/internal/service/gateway/breaker"
	"gitee.com/flycash/easy-sms/internal/service/gateway/errorlog"
	"gitee.com/flycash/easy-sms/internal/service/gateway/metrics"
	"gitee.com/flycash/easy-sms/internal/service/gateway/tencent"
	"gitee.com/flycash/easy-sms/internal/service/gateway/tracing"
	"gitee.com/flycash/easy-sms/internal/service/gateway/twilio"
	"gitee.com/flycash/easy-sms/internal/service/gateway/yunpian"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus"
)

// InitPrometheusRegisterer 进程内共用的指标注册器
func InitPrometheusRegisterer() prometheus.Registerer {
	return prometheus.DefaultRegisterer
}

// InitRegistry 注册内置网关。
// 装饰器按添加顺序由内向外包裹：熔断、指标、链路追踪。
// 指标注册到 reg 上，同一个 reg 只能调用一次。
func InitRegistry(store config.Store, reg prometheus.Registerer) *gateway.DefaultRegistry {
	type Config struct {
		Breaker breaker.Config `yaml:"breaker"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("smsMiddleware", &cfg); err != nil {
		elog.DefaultLogger.Warn("没有网关中间件配置，使用默认值", elog.FieldErr(err))
	}

	registry := gateway.NewRegistry(store).
		Extend(aliyun.Name, aliyun.New).
		Extend(tencent.Name, tencent.New).
		Extend(yunpian.Name, yunpian.New).
		Extend(twilio.Name, twilio.New).
		Extend(errorlog.Name, errorlog.New)

	return registry.Use(
		breaker.NewDecorator(cfg.Breaker),
		metrics.NewCollector(reg).Decorator(),
		tracing.NewDecorator(nil),
	)
}
