package config

import (
	"testing"
	"time"

	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/errs"
	"github.com/gotomicro/ego/core/econf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
timeout: 2.5
default:
  strategy: order
  gateways:
    - aliyun
    - yunpian
gateways:
  aliyun:
    access_key_id: A
    sign_name: easysms
  yunpian:
    api_key: Y
  errorlog:
    file: /tmp/easy-sms.log
`

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	store, err := LoadYAML([]byte(testYAML))
	require.NoError(t, err)

	assert.Equal(t, []domain.Candidate{{Name: "aliyun"}, {Name: "yunpian"}}, DefaultGateways(store))
	assert.Equal(t, domain.Settings{"access_key_id": "A", "sign_name": "easysms"}, GatewaySettings(store, "aliyun"))
	assert.Nil(t, GatewaySettings(store, "unknown"))
	assert.Equal(t, "order", DefaultStrategy(store))
	assert.Equal(t, 2500*time.Millisecond, Timeout(store))

	_, err = LoadYAML([]byte("gateways: [unclosed"))
	assert.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestMapStore_Get(t *testing.T) {
	t.Parallel()

	store := NewStore(map[string]any{
		"default": map[string]any{"gateways": []string{"aliyun"}},
		"gateways": map[string]any{
			"aliyun": map[string]any{"key": "A"},
			"nil":    nil,
		},
	})

	testCases := []struct {
		name string
		path string
		def  any
		want any
	}{
		{name: "嵌套路径", path: "gateways.aliyun.key", want: "A"},
		{name: "不存在的路径", path: "gateways.qcloud", def: "def", want: "def"},
		{name: "值为空使用默认值", path: "gateways.nil", def: 1, want: 1},
		{name: "穿过非映射的值", path: "gateways.aliyun.key.deeper", def: "def", want: "def"},
		{name: "列表", path: "default.gateways", want: []any{"aliyun"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, store.Get(tc.path, tc.def))
		})
	}
}

func TestNewStore_Snapshot(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"gateways": map[string]any{"aliyun": map[string]any{"key": "A"}},
	}
	store := NewStore(raw)
	raw["gateways"].(map[string]any)["aliyun"].(map[string]any)["key"] = "changed"

	assert.Equal(t, "A", store.Get("gateways.aliyun.key", nil))
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3*time.Second, Timeout(NewStore(map[string]any{"timeout": 3})))
	assert.Equal(t, 200*time.Millisecond, Timeout(NewStore(map[string]any{"timeout": "200ms"})))
	assert.Equal(t, defaultTimeout, Timeout(NewStore(nil)))
}

func TestNewEconfStore(t *testing.T) {
	econf.Set("sms", map[string]any{
		"default": map[string]any{"gateways": []any{"aliyun"}},
		"gateways": map[string]any{
			"aliyun": map[string]any{"key": "A"},
		},
	})

	store, err := NewEconfStore("sms")
	require.NoError(t, err)
	assert.Equal(t, []domain.Candidate{{Name: "aliyun"}}, DefaultGateways(store))
	assert.Equal(t, domain.Settings{"key": "A"}, GatewaySettings(store, "aliyun"))
}

// 仓库自带的配置文件里网关密钥都是空的，默认只能走 errorlog
func TestShippedConfig_DefaultGateways(t *testing.T) {
	t.Parallel()

	root, err := LoadYAMLFile("../../config/config.yaml")
	require.NoError(t, err)
	raw, ok := root.Get("sms", nil).(map[string]any)
	require.True(t, ok)
	store := NewStore(raw)

	candidates := DefaultGateways(store)
	require.Len(t, candidates, 1)
	assert.Equal(t, "errorlog", candidates[0].Name)
	assert.Equal(t, "order", DefaultStrategy(store))
	assert.Equal(t, 5*time.Second, Timeout(store))
}
