package twilio

import (
	"context"

	"net/http"
	"net/http/httptest"
	"testing"

	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_Send(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		handler func(t *testing.T) http.HandlerFunc
		to      []string
		msg     domain.Message
		// 为空时使用测试服务器地址
		settings domain.Settings

		wantErr      error
		wantDelivery bool
		wantCode     string
		// 出错之前已经发出的消息 ID
		wantDelivered []string
		wantResp      domain.SendResponse
	}{
		{
			name: "发送成功",
			handler: func(t *testing.T) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "/2010-04-01/Accounts/AC1/Messages.json", r.URL.Path)
					user, pass, ok := r.BasicAuth()
					assert.True(t, ok)
					assert.Equal(t, "AC1", user)
					assert.Equal(t, "token", pass)
					assert.NoError(t, r.ParseForm())
					assert.Equal(t, "+15005550006", r.PostForm.Get("From"))
					assert.Equal(t, "hello", r.PostForm.Get("Body"))
					w.WriteHeader(http.StatusCreated)
					_, _ = w.Write([]byte(`{"sid":"SM` + r.PostForm.Get("To") + `","status":"queued"}`))
				}
			},
			to:       []string{"+1", "+2"},
			msg:      domain.Message{Content: "hello"},
			wantResp: domain.SendResponse{MessageID: "SM+1,SM+2", Code: "queued"},
		},
		{
			name: "接口报错",
			handler: func(*testing.T) http.HandlerFunc {
				return func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusBadRequest)
					_, _ = w.Write([]byte(`{"code":21211,"message":"Invalid 'To' Phone Number","status":400}`))
				}
			},
			to:           []string{"+1"},
			msg:          domain.Message{Content: "hello"},
			wantErr:      errs.ErrGatewayFailed,
			wantDelivery: true,
			wantCode:     "21211",
		},
		{
			name: "第二个号码失败",
			handler: func(*testing.T) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					_ = r.ParseForm()
					if r.PostForm.Get("To") == "+1" {
						w.WriteHeader(http.StatusCreated)
						_, _ = w.Write([]byte(`{"sid":"SM1","status":"queued"}`))
						return
					}
					w.WriteHeader(http.StatusBadRequest)
					_, _ = w.Write([]byte(`{"code":21211,"message":"Invalid 'To' Phone Number","status":400}`))
				}
			},
			to:            []string{"+1", "+2"},
			msg:           domain.Message{Content: "hello"},
			wantErr:       errs.ErrGatewayFailed,
			wantDelivery:  true,
			wantCode:      "21211",
			wantDelivered: []string{"SM1"},
		},
		{
			name: "没有响应体",
			handler: func(*testing.T) http.HandlerFunc {
				return func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusServiceUnavailable)
				}
			},
			to:           []string{"+1"},
			msg:          domain.Message{Content: "hello"},
			wantErr:      errs.ErrGatewayFailed,
			wantDelivery: true,
			wantCode:     "503",
		},
		{
			name: "内容为空",
			handler: func(*testing.T) http.HandlerFunc {
				return func(http.ResponseWriter, *http.Request) {}
			},
			to:           []string{"+1"},
			wantErr:      errs.ErrGatewayFailed,
			wantDelivery: true,
		},
		{
			name: "缺少 from",
			handler: func(*testing.T) http.HandlerFunc {
				return func(http.ResponseWriter, *http.Request) {}
			},
			to:       []string{"+1"},
			msg:      domain.Message{Content: "hello"},
			settings: domain.Settings{"account_sid": "AC1", "auth_token": "token"},
			wantErr:  errs.ErrInvalidSettings,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(tc.handler(t))
			defer server.Close()

			settings := tc.settings
			if settings == nil {
				settings = domain.Settings{
					"account_sid": "AC1",
					"auth_token":  "token",
					"from":        "+15005550006",
					"endpoint":    server.URL,
				}
			}

			g := NewGateway(server.Client())
			resp, err := g.Send(context.Background(), tc.to, tc.msg, settings)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, tc.wantDelivery, errs.IsGatewayError(err))
				if tc.wantCode != "" {
					var ge *errs.GatewayError
					require.ErrorAs(t, err, &ge)
					assert.Equal(t, tc.wantCode, ge.Code)
					assert.Equal(t, tc.wantDelivered, ge.Delivered)
				}
				return
			}
			require.NoError(t, err)
			resp.Raw = nil
			assert.Equal(t, tc.wantResp, resp)
		})
	}
}
