//go:build wireinject

package ioc

import (
	"gitee.com/flycash/easy-sms/internal/config"
	"gitee.com/flycash/easy-sms/internal/ioc"
	"gitee.com/flycash/easy-sms/internal/service/messenger"
	smsweb "gitee.com/flycash/easy-sms/internal/web/sms"
	"github.com/google/wire"
)

var (
	BaseSet = wire.NewSet(
		ioc.InitStore,
		wire.Bind(new(config.Store), new(*config.MapStore)),
		ioc.InitIDGenerator,
		ioc.InitPrometheusRegisterer,
	)
	messengerSet = wire.NewSet(
		ioc.InitRegistry,
		ioc.InitMessenger,
	)
	webSet = wire.NewSet(
		smsweb.NewHandler,
		wire.Bind(new(smsweb.Sender), new(*messenger.Messenger)),
		ioc.InitWebServer,
	)
)

func InitApp() *ioc.App {
	wire.Build(
		// 基础设施
		BaseSet,

		// 短信发送
		messengerSet,

		// HTTP 服务器
		webSet,
		ioc.InitGovernor,
		wire.Struct(new(ioc.App), "*"),
	)

	return new(ioc.App)
}
