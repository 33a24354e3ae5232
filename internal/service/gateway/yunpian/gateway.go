package yunpian

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
	Name = "yunpian"

	defaultEndpoint = "https://sms.yunpian.com/v2/sms/single_send.json"
)

var _ gateway.Gateway = (*Gateway)(nil)

// Config 云片配置
type Config struct {
	APIKey    string `mapstructure:"api_key"`
	Signature string `mapstructure:"signature"`
	Endpoint  string `mapstructure:"endpoint"`
}

type sendResult struct {
	Code   int     `json:"code"`
	Msg    string  `json:"msg"`
	Count  int     `json:"count"`
	Fee    float64 `json:"fee"`
	Mobile string  `json:"mobile"`
	SID    int64   `json:"sid"`
}

// Gateway 云片短信网关，使用单条发送接口逐个号码发送
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
	if cfg.APIKey == "" {
		return domain.SendResponse{}, fmt.Errorf("%w: yunpian 缺少 api_key", errs.ErrInvalidSettings)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if len(to) == 0 {
		return domain.SendResponse{}, errs.NewGatewayError(Name, "", "手机号码不能为空")
	}

	text := msg.Content
	if cfg.Signature != "" && !strings.HasPrefix(text, "【") {
		text = "【" + cfg.Signature + "】" + text
	}
	if text == "" {
		return domain.SendResponse{}, errs.NewGatewayError(Name, "", "短信内容不能为空")
	}

	sids := make([]string, 0, len(to))
	results := make([]sendResult, 0, len(to))
	for _, mobile := range to {
		res, err := g.sendOne(ctx, cfg, mobile, text)
		if err != nil {
			return domain.SendResponse{}, errs.WithDelivered(err, sids)
		}
		sids = append(sids, strconv.FormatInt(res.SID, 10))
		results = append(results, res)
	}
	return domain.SendResponse{
		MessageID: strings.Join(sids, ","),
		Code:      "0",
		Message:   results[len(results)-1].Msg,
		Raw:       results,
	}, nil
}

func (g *Gateway) sendOne(ctx context.Context, cfg Config, mobile, text string) (sendResult, error) {
	form := url.Values{}
	form.Set("apikey", cfg.APIKey)
	form.Set("mobile", mobile)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return sendResult{}, fmt.Errorf("%w: yunpian endpoint 非法: %w", errs.ErrInvalidSettings, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("Accept", "application/json;charset=utf-8")

	resp, err := g.client.Do(req)
	if err != nil {
		return sendResult{}, errs.WrapGatewayError(Name, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return sendResult{}, errs.WrapGatewayError(Name, err)
	}

	var res sendResult
	if err = json.Unmarshal(body, &res); err != nil {
		return sendResult{}, errs.NewGatewayError(Name, strconv.Itoa(resp.StatusCode), fmt.Sprintf("响应解析失败: %s", body))
	}
	if res.Code != 0 {
		return sendResult{}, errs.NewGatewayError(Name, strconv.Itoa(res.Code), fmt.Sprintf("%s: %s", mobile, res.Msg))
	}
	return res, nil
}
