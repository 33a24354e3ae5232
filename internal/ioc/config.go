package ioc

import (
	"gitee.com/flycash/easy-sms/internal/config"
)

// InitStore 短信相关的配置都在 sms 下
func InitStore() *config.MapStore {
	store, err := config.NewEconfStore("sms")
	if err != nil {
		panic(err)
	}
	return store
}
