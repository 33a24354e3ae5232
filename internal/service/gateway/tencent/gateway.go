package tencent

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"gitee.com/flycash/easy-sms/internal/config"
	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/errs"
	"gitee.com/flycash/easy-sms/internal/service/gateway"
	"github.com/ecodeclub/ekit/mapx"
	"github.com/patrickmn/go-cache"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	tcerr "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/errors"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	sms "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/sms/v20210111"
)

const (
	// Name 沿用腾讯云短信旧称
	Name = "qcloud"

	OK              = "Ok"
	defaultEndpoint = "sms.tencentcloudapi.com"
	defaultRegion   = "ap-guangzhou"
	defaultIDDCode  = "+86"

	clientExpiration = 30 * time.Minute
)

var _ gateway.Gateway = (*Gateway)(nil)

// Config 腾讯云短信配置
type Config struct {
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
	SDKAppID  string `mapstructure:"sdk_app_id"`
	SignName  string `mapstructure:"sign_name"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	// IDDCode 没有国际区号的手机号码默认使用的区号
	IDDCode string `mapstructure:"idd_code"`
}

func (c Config) cacheKey() string {
	return strings.Join([]string{c.SecretID, c.SecretKey, c.Region, c.Endpoint}, "|")
}

// API 腾讯云短信 SDK 中用到的方法
type API interface {
	SendSmsWithContext(ctx context.Context, request *sms.SendSmsRequest) (*sms.SendSmsResponse, error)
}

// APIFactory 根据配置创建 SDK 客户端
type APIFactory func(cfg Config, timeout time.Duration) (API, error)

// Gateway 腾讯云短信网关，按照密钥缓存 SDK 客户端
type Gateway struct {
	timeout time.Duration
	newAPI  APIFactory
	clients *cache.Cache
}

// New 创建腾讯云短信网关
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

// NewAPI 创建腾讯云 SDK 客户端
func NewAPI(cfg Config, timeout time.Duration) (API, error) {
	credential := common.NewCredential(cfg.SecretID, cfg.SecretKey)
	cpf := profile.NewClientProfile()
	cpf.HttpProfile.Endpoint = cfg.Endpoint
	cpf.HttpProfile.ReqTimeout = max(int(timeout.Seconds()), 1)
	return sms.NewClient(credential, cfg.Region, cpf)
}

func (g *Gateway) Name() string {
	return Name
}

func (g *Gateway) Send(ctx context.Context, to []string, msg domain.Message, settings domain.Settings) (domain.SendResponse, error) {
	var cfg Config
	if err := settings.Decode(&cfg); err != nil {
		return domain.SendResponse{}, err
	}
	if cfg.SecretID == "" || cfg.SecretKey == "" || cfg.SDKAppID == "" {
		return domain.SendResponse{}, fmt.Errorf("%w: qcloud 缺少 secret_id、secret_key 或 sdk_app_id", errs.ErrInvalidSettings)
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.IDDCode == "" {
		cfg.IDDCode = defaultIDDCode
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

	request := sms.NewSendSmsRequest()
	request.SmsSdkAppId = common.StringPtr(cfg.SDKAppID)
	request.SignName = common.StringPtr(cfg.SignName)
	request.TemplateId = common.StringPtr(msg.Template)
	request.PhoneNumberSet = common.StringPtrs(phoneNumbers(to, cfg.IDDCode))
	request.TemplateParamSet = common.StringPtrs(templateParams(msg.Data))

	response, err := client.SendSmsWithContext(ctx, request)
	if err != nil {
		var sdkErr *tcerr.TencentCloudSDKError
		if errors.As(err, &sdkErr) {
			return domain.SendResponse{}, errs.NewGatewayError(Name, sdkErr.GetCode(), sdkErr.GetMessage())
		}
		return domain.SendResponse{}, errs.WrapGatewayError(Name, err)
	}
	if response == nil || response.Response == nil {
		return domain.SendResponse{}, errs.NewGatewayError(Name, "", "响应异常")
	}

	// 每个手机号码都有自己的状态，任意一个失败都视为失败，已发出的流水号记在错误里
	serialNos := make([]string, 0, len(response.Response.SendStatusSet))
	var failed error
	for _, status := range response.Response.SendStatusSet {
		if status == nil {
			continue
		}
		code := stringValue(status.Code)
		if code != OK {
			if failed == nil {
				failed = errs.NewGatewayError(Name, code,
					fmt.Sprintf("%s: %s", stringValue(status.PhoneNumber), stringValue(status.Message)))
			}
			continue
		}
		serialNos = append(serialNos, stringValue(status.SerialNo))
	}
	if failed != nil {
		return domain.SendResponse{}, errs.WithDelivered(failed, serialNos)
	}

	return domain.SendResponse{
		RequestID: stringValue(response.Response.RequestId),
		MessageID: strings.Join(serialNos, ","),
		Code:      OK,
		Raw:       response.Response,
	}, nil
}

func (g *Gateway) client(cfg Config) (API, error) {
	key := cfg.cacheKey()
	if c, ok := g.clients.Get(key); ok {
		return c.(API), nil
	}
	c, err := g.newAPI(cfg, g.timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: 创建腾讯云客户端失败: %w", errs.ErrInvalidSettings, err)
	}
	g.clients.Set(key, c, cache.DefaultExpiration)
	return c, nil
}

func phoneNumbers(to []string, iddCode string) []string {
	res := make([]string, 0, len(to))
	for _, phone := range to {
		if !strings.HasPrefix(phone, "+") {
			phone = iddCode + phone
		}
		res = append(res, phone)
	}
	return res
}

// templateParams 腾讯云模版参数是有序的。
// 数字参数名排在前面并按数值大小排序，其余参数名按字典序。
func templateParams(data map[string]string) []string {
	keys := mapx.Keys(data)
	slices.SortFunc(keys, func(a, b string) int {
		x, errA := strconv.Atoi(a)
		y, errB := strconv.Atoi(b)
		switch {
		case errA == nil && errB == nil:
			return cmp.Compare(x, y)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		}
		return strings.Compare(a, b)
	})
	res := make([]string, 0, len(keys))
	for _, k := range keys {
		res = append(res, data[k])
	}
	return res
}

func stringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
