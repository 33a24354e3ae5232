package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gitee.com/flycash/easy-sms/internal/config"
	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/errs"
	"gitee.com/flycash/easy-sms/internal/service/gateway"
)

const (
	Name = "twilio"

	defaultEndpoint = "https://api.twilio.com"
)

var _ gateway.Gateway = (*Gateway)(nil)

type Config struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	From       string `mapstructure:"from"`
	Endpoint   string `mapstructure:"endpoint"`
}

type messageResource struct {
	SID       string `json:"sid"`
	Status    string `json:"status"`
	ErrorCode *int   `json:"error_code"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
}

// Gateway Twilio 短信网关，每个号码单独创建一条 Message
type Gateway struct {
	client *http.Client
}

func New(store config.Store) (gateway.Gateway, error) {
	return NewGateway(&http.Client{Timeout: config.Timeout(store)}), nil
}

func NewGateway(client *http.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) Name() string {
	return Name
}

func (g *Gateway) Send(ctx context.Context, to []string, msg domain.Message, settings domain.Settings) (domain.SendResponse, error) {
	var cfg Config
	if err := settings.Decode(&cfg); err != nil {
		return domain.SendResponse{}, err
	}
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.From == "" {
		return domain.SendResponse{}, fmt.Errorf("%w: twilio 缺少 account_sid、auth_token 或 from", errs.ErrInvalidSettings)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if len(to) == 0 {
		return domain.SendResponse{}, errs.NewGatewayError(Name, "", "手机号码不能为空")
	}
	if msg.Content == "" {
		return domain.SendResponse{}, errs.NewGatewayError(Name, "", "短信内容不能为空")
	}

	sids := make([]string, 0, len(to))
	resources := make([]messageResource, 0, len(to))
	for _, phone := range to {
		res, err := g.sendOne(ctx, cfg, phone, msg.Content)
		if err != nil {
			return domain.SendResponse{}, errs.WithDelivered(err, sids)
		}
		sids = append(sids, res.SID)
		resources = append(resources, res)
	}
	return domain.SendResponse{
		MessageID: strings.Join(sids, ","),
		Code:      resources[len(resources)-1].Status,
		Raw:       resources,
	}, nil
}

func (g *Gateway) sendOne(ctx context.Context, cfg Config, phone, body string) (messageResource, error) {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", cfg.From)
	form.Set("Body", body)

	endpoint := strings.TrimRight(cfg.Endpoint, "/") + "/2010-04-01/Accounts/" + cfg.AccountSID + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return messageResource{}, fmt.Errorf("%w: twilio endpoint 非法: %w", errs.ErrInvalidSettings, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(cfg.AccountSID, cfg.AuthToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return messageResource{}, errs.WrapGatewayError(Name, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return messageResource{}, errs.WrapGatewayError(Name, err)
	}

	var res messageResource
	_ = json.Unmarshal(b, &res)

	// 创建成功返回 201，2xx 都视为成功
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		code := strconv.Itoa(resp.StatusCode)
		if res.Code != 0 {
			code = strconv.Itoa(res.Code)
		}
		message := res.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return messageResource{}, errs.NewGatewayError(Name, code, fmt.Sprintf("%s: %s", phone, message))
	}
	return res, nil
}
