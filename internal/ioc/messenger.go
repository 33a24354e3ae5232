package ioc

import (
	"time"

	"gitee.com/flycash/easy-sms/internal/config"
	"gitee.com/flycash/easy-sms/internal/service/gateway"
	"gitee.com/flycash/easy-sms/internal/service/messenger"
	"gitee.com/flycash/easy-sms/internal/service/strategy"
	"github.com/ecodeclub/ekit/bean/option"
	"github.com/gotomicro/ego/core/econf"
	"github.com/sony/sonyflake"
)

func InitIDGenerator() *sonyflake.Sonyflake {
	type Config struct {
		// MachineID 为 0 时使用内网IP的低16位
		MachineID uint16 `yaml:"machineId"`
	}
	var cfg Config
	_ = econf.UnmarshalKey("idGenerator", &cfg)

	settings := sonyflake.Settings{
		StartTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if cfg.MachineID != 0 {
		settings.MachineID = func() (uint16, error) {
			return cfg.MachineID, nil
		}
	}
	sf := sonyflake.NewSonyflake(settings)
	if sf == nil {
		panic("初始化ID生成器失败，请配置 idGenerator.machineId")
	}
	return sf
}

func InitMessenger(store config.Store, registry *gateway.DefaultRegistry, idGenerator *sonyflake.Sonyflake) *messenger.Messenger {
	s, err := strategy.New(config.DefaultStrategy(store))
	if err != nil {
		panic(err)
	}
	opts := []option.Option[messenger.Messenger]{
		messenger.WithStrategy(s),
		messenger.WithIDGenerator(idGenerator),
	}
	if parallel, _ := store.Get(config.KeyParallel, false).(bool); parallel {
		opts = append(opts, messenger.WithParallel())
	}
	return messenger.NewMessenger(store, registry, opts...)
}
