package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/errs"
	"github.com/gotomicro/ego/core/econf"
	"gopkg.in/yaml.v2"
)

const (
	KeyTimeout         = "timeout"
	KeyDefaultStrategy = "default.strategy"
	KeyDefaultGateways = "default.gateways"
	KeyParallel        = "parallel"
	keyGatewayPrefix   = "gateways."

	defaultTimeout = 5 * time.Second
)

// Store 只读配置，使用点号分隔的路径读取，例如 gateways.aliyun
type Store interface {
	// Get 读取配置，不存在时返回 def
	Get(path string, def any) any
}

// MapStore 基于嵌套 map 的配置快照，构造之后不会再修改，可以并发读取
type MapStore struct {
	data map[string]any
}

var _ Store = (*MapStore)(nil)

// NewStore 深拷贝 data 作为快照
func NewStore(data map[string]any) *MapStore {
	return &MapStore{data: normalizeMap(data)}
}

// LoadYAML 从 YAML 内容构造配置快照
func LoadYAML(content []byte) (*MapStore, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}
	return NewStore(raw), nil
}

// LoadYAMLFile 从 YAML 文件构造配置快照
func LoadYAMLFile(path string) (*MapStore, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}
	return LoadYAML(content)
}

// NewEconfStore 以 ego 配置中 key 下的内容构造快照，之后 econf 的变化不会影响快照
func NewEconfStore(key string) (*MapStore, error) {
	var raw map[string]any
	if err := econf.UnmarshalKey(key, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}
	return NewStore(raw), nil
}

func (s *MapStore) Get(path string, def any) any {
	var cur any = s.data
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return def
		}
		cur, ok = m[seg]
		if !ok {
			return def
		}
	}
	if cur == nil {
		return def
	}
	return cur
}

// DefaultGateways 全局默认网关列表
func DefaultGateways(s Store) []domain.Candidate {
	return domain.ParseCandidates(s.Get(KeyDefaultGateways, nil))
}

// GatewaySettings 网关的全局配置，不存在或者不是映射时返回 nil
func GatewaySettings(s Store, gateway string) domain.Settings {
	settings, ok := domain.AsSettings(s.Get(keyGatewayPrefix+gateway, nil))
	if !ok {
		return nil
	}
	return settings.Clone()
}

// DefaultStrategy 默认的网关选择策略名称
func DefaultStrategy(s Store) string {
	name, _ := s.Get(KeyDefaultStrategy, "").(string)
	return name
}

// Timeout 网关请求超时时间，配置单位为秒
func Timeout(s Store) time.Duration {
	switch v := s.Get(KeyTimeout, nil).(type) {
	case int:
		return time.Duration(v) * time.Second
	case int64:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultTimeout
}

func normalizeMap(src map[string]any) map[string]any {
	res := make(map[string]any, len(src))
	for k, v := range src {
		res[k] = normalize(v)
	}
	return res
}

// normalize 深拷贝，同时把 yaml.v2 产生的 map[interface{}]interface{} 转换为 map[string]any
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeMap(val)
	case domain.Settings:
		return normalizeMap(val)
	case map[any]any:
		res := make(map[string]any, len(val))
		for k, item := range val {
			res[fmt.Sprint(k)] = normalize(item)
		}
		return res
	case []any:
		res := make([]any, len(val))
		for i, item := range val {
			res[i] = normalize(item)
		}
		return res
	case []string:
		res := make([]any, len(val))
		for i, item := range val {
			res[i] = item
		}
		return res
	default:
		return v
	}
}
