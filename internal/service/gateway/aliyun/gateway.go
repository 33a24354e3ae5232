package aliyun

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gitee.com/flycash/easy-sms/internal/config"
	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/errs"
	"gitee.com/flycash/easy-sms/internal/service/gateway"
	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi "github.com/alibabacloud-go/dysmsapi-20170525/v3/client"
	"github.com/alibabacloud-go/tea/tea"
	"github.com/patrickmn/go-cache"
)

const (
	Name = "aliyun"

	OK              = "OK"
	defaultEndpoint = "dysmsapi.aliyuncs.com"
	defaultRegionID = "cn-hangzhou"

	clientExpiration = 30 * time.Minute
)

var _ gateway.Gateway = (*Gateway)(nil)

// Config 阿里云短信配置
type Config struct {
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	SignName        string `mapstructure:"sign_name"`
	RegionID        string `mapstructure:"region_id"`
	Endpoint        string `mapstructure:"endpoint"`
}

func (c Config) cacheKey() string {
	return strings.Join([]string{c.AccessKeyID, c.AccessKeySecret, c.RegionID, c.Endpoint}, "|")
}

// API 阿里云短信 SDK 中用到的方法
type API interface {
	SendSms(request *dysmsapi.SendSmsRequest) (*dysmsapi.SendSmsResponse, error)
}

// APIFactory 根据配置创建 SDK 客户端
type APIFactory func(cfg Config, timeout time.Duration) (API, error)

// Gateway 阿里云短信网关，按照密钥缓存 SDK 客户端
type Gateway struct {
	timeout time.Duration
	newAPI  APIFactory
	clients *cache.Cache
}

// New 创建阿里云短信网关
func New(store config.Store) (gateway.Gateway, error) {
	return NewGateway(config.Timeout(store), NewAPI), nil
}

func NewGateway(timeout time.Duration, newAPI APIFactory) *Gateway {
	return &Gateway{
		timeout: timeout,
		newAPI:  newAPI,
		clients: cache.New(clientExpiration, 2*clientExpiration),
	}
}

// NewAPI 创建阿里云 SDK 客户端
func NewAPI(cfg Config, timeout time.Duration) (API, error) {
	ms := int(timeout.Milliseconds())
	return dysmsapi.NewClient(&openapi.Config{
		AccessKeyId:     tea.String(cfg.AccessKeyID),
		AccessKeySecret: tea.String(cfg.AccessKeySecret),
		RegionId:        tea.String(cfg.RegionID),
		Endpoint:        tea.String(cfg.Endpoint),
		ConnectTimeout:  tea.Int(ms),
		ReadTimeout:     tea.Int(ms),
	})
}

func (g *Gateway) Name() string {
	return Name
}

func (g *Gateway) Send(_ context.Context, to []string, msg domain.Message, settings domain.Settings) (domain.SendResponse, error) {
	var cfg Config
	if err := settings.Decode(&cfg); err != nil {
		return domain.SendResponse{}, err
	}
	if cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" {
		return domain.SendResponse{}, fmt.Errorf("%w: aliyun 缺少 access_key_id 或 access_key_secret", errs.ErrInvalidSettings)
	}
	if cfg.RegionID == "" {
		cfg.RegionID = defaultRegionID
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}

	if len(to) == 0 {
		return domain.SendResponse{}, errs.NewGatewayError(Name, "", "手机号码不能为空")
	}
	if msg.Template == "" {
		return domain.SendResponse{}, errs.NewGatewayError(Name, "", "模版ID不能为空")
	}

	client, err := g.client(cfg)
	if err != nil {
		return domain.SendResponse{}, err
	}

	templateParam := ""
	if len(msg.Data) > 0 {
		jsonParams, err := json.Marshal(msg.Data)
		if err != nil {
			return domain.SendResponse{}, errs.WrapGatewayError(Name, err)
		}
		templateParam = string(jsonParams)
	}

	// 多个手机号码用逗号分隔
	request := &dysmsapi.SendSmsRequest{
		PhoneNumbers:  tea.String(strings.Join(to, ",")),
		SignName:      tea.String(cfg.SignName),
		TemplateCode:  tea.String(msg.Template),
		TemplateParam: tea.String(templateParam),
	}

	response, err := client.SendSms(request)
	if err != nil {
		return domain.SendResponse{}, errs.WrapGatewayError(Name, err)
	}
	if response == nil || response.Body == nil || response.Body.Code == nil {
		return domain.SendResponse{}, errs.NewGatewayError(Name, "", "响应异常")
	}

	body := response.Body
	if tea.StringValue(body.Code) != OK {
		return domain.SendResponse{}, errs.NewGatewayError(Name, tea.StringValue(body.Code), tea.StringValue(body.Message))
	}

	return domain.SendResponse{
		RequestID: tea.StringValue(body.RequestId),
		MessageID: tea.StringValue(body.BizId),
		Code:      tea.StringValue(body.Code),
		Message:   tea.StringValue(body.Message),
		Raw:       body,
	}, nil
}

func (g *Gateway) client(cfg Config) (API, error) {
	key := cfg.cacheKey()
	if c, ok := g.clients.Get(key); ok {
		return c.(API), nil
	}
	c, err := g.newAPI(cfg, g.timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: 创建阿里云客户端失败: %w", errs.ErrInvalidSettings, err)
	}
	g.clients.Set(key, c, cache.DefaultExpiration)
	return c, nil
}
