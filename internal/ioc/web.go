package ioc

import (
	smsweb "gitee.com/flycash/easy-sms/internal/web/sms"
	"github.com/gotomicro/ego/server/egin"
	"github.com/gotomicro/ego/server/egovernor"
)

type App struct {
	Web      *egin.Component
	Governor *egovernor.Component
}

func InitWebServer(handler *smsweb.Handler) *egin.Component {
	server := egin.Load("server.http").Build()
	handler.PublicRoutes(server.Engine)
	return server
}

func InitGovernor() *egovernor.Component {
	return egovernor.Load("server.governor").Build()
}
