package errorlog

import (
	"context"
	"strings"

	"gitee.com/flycash/easy-sms/internal/config"
	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/service/gateway"
	"github.com/gotomicro/ego/core/elog"
)

const Name = "errorlog"

type Config struct {
	// Level debug、info、warn 或者 error，默认为 info
	Level string `mapstructure:"level"`
}

var _ gateway.Gateway = (*Gateway)(nil)

// Gateway 不真正发送短信，只把消息写到日志里，用于调试或者兜底
type Gateway struct {
	logger *elog.Component
}

func New(_ config.Store) (gateway.Gateway, error) {
	return NewGateway(elog.DefaultLogger), nil
}

func NewGateway(logger *elog.Component) *Gateway {
	return &Gateway{logger: logger}
}

func (g *Gateway) Name() string {
	return Name
}

func (g *Gateway) Send(_ context.Context, to []string, msg domain.Message, settings domain.Settings) (domain.SendResponse, error) {
	var cfg Config
	if err := settings.Decode(&cfg); err != nil {
		return domain.SendResponse{}, err
	}
	fields := []elog.Field{
		elog.String("to", strings.Join(to, ",")),
		elog.String("type", string(msg.MessageType())),
		elog.String("content", msg.Content),
		elog.String("template", msg.Template),
		elog.Any("data", msg.Data),
	}
	switch cfg.Level {
	case "debug":
		g.logger.Debug("短信", fields...)
	case "warn":
		g.logger.Warn("短信", fields...)
	case "error":
		g.logger.Error("短信", fields...)
	default:
		g.logger.Info("短信", fields...)
	}
	return domain.SendResponse{Code: "OK", Message: "已写入日志"}, nil
}
