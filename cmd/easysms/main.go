package main

import (
	"gitee.com/flycash/easy-sms/cmd/easysms/ioc"
	"github.com/gotomicro/ego"
	"github.com/gotomicro/ego/core/elog"
)

func main() {
	// 需要先加载配置，所以在 ego.New 之后初始化
	egoApp := ego.New()
	app := ioc.InitApp()
	if err := egoApp.Serve(app.Governor, app.Web).Run(); err != nil {
		elog.Panic("startup", elog.FieldErr(err))
	}
}
