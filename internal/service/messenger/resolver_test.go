package messenger

import (
	"testing"

	"gitee.com/flycash/easy-sms/internal/config"
	"gitee.com/flycash/easy-sms/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	store := config.NewStore(map[string]any{
		"gateways": map[string]any{
			"aliyun":  map[string]any{"key": "A", "sign_name": "global"},
			"yunpian": map[string]any{"key": "Y"},
			"empty":   map[string]any{},
			"scalar":  "not-a-map",
		},
	})

	testCases := []struct {
		name        string
		candidates  []domain.Candidate
		wantNames   []string
		wantDropped []string
		wantAliyun  domain.Settings
	}{
		{
			name:       "没有候选网关",
			candidates: nil,
			wantNames:  []string{},
		},
		{
			name:       "覆盖配置优先",
			candidates: []domain.Candidate{{Name: "aliyun", Settings: domain.Settings{"sign_name": "override"}}},
			wantNames:  []string{"aliyun"},
			wantAliyun: domain.Settings{"key": "A", "sign_name": "override"},
		},
		{
			name:        "未知网关被丢弃",
			candidates:  domain.Gateways("unknown", "yunpian", "empty", "scalar", ""),
			wantNames:   []string{"yunpian"},
			wantDropped: []string{"unknown", "empty", "scalar", ""},
		},
		{
			name:       "保留候选顺序",
			candidates: domain.Gateways("yunpian", "aliyun"),
			wantNames:  []string{"yunpian", "aliyun"},
			wantAliyun: domain.Settings{"key": "A", "sign_name": "global"},
		},
		{
			name: "覆盖配置不能引入未知网关",
			candidates: []domain.Candidate{
				{Name: "qcloud", Settings: domain.Settings{"secret_id": "x"}},
			},
			wantNames:   []string{},
			wantDropped: []string{"qcloud"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resolved, dropped := Resolve(tc.candidates, store)
			assert.Equal(t, tc.wantNames, resolved.Names())
			assert.Equal(t, tc.wantDropped, dropped)
			if tc.wantAliyun != nil {
				got, ok := resolved.Get("aliyun")
				assert.True(t, ok)
				assert.Equal(t, tc.wantAliyun, got)
			}
		})
	}

	// 全局配置不会被覆盖配置修改
	assert.Equal(t, domain.Settings{"key": "A", "sign_name": "global"}, config.GatewaySettings(store, "aliyun"))
}
