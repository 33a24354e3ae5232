package domain

import (
	"fmt"
	"maps"
	"sort"

	"gitee.com/flycash/easy-sms/internal/errs"
	"github.com/mitchellh/mapstructure"
)

// Settings 单个网关的配置，例如密钥、签名、接入点
type Settings map[string]any

// Merge 浅合并，override 中的键优先。不修改接收者和参数
func (s Settings) Merge(override Settings) Settings {
	res := make(Settings, len(s)+len(override))
	maps.Copy(res, s)
	maps.Copy(res, override)
	return res
}

// Clone 浅拷贝
func (s Settings) Clone() Settings {
	if s == nil {
		return Settings{}
	}
	return maps.Clone(s)
}

// String 读取字符串配置，不存在或者类型不对时返回空串
func (s Settings) String(key string) string {
	v, ok := s[key]
	if !ok || v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

// Decode 把配置解析到结构体，字段使用 mapstructure 标签
func (s Settings) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidSettings, err)
	}
	if err = decoder.Decode(map[string]any(s)); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidSettings, err)
	}
	return nil
}

// AsSettings 把任意值转换为 Settings，只接受键为字符串的映射
func AsSettings(v any) (Settings, bool) {
	switch val := v.(type) {
	case Settings:
		return val, true
	case map[string]any:
		return val, true
	case map[string]string:
		res := make(Settings, len(val))
		for k, v := range val {
			res[k] = v
		}
		return res, true
	case map[any]any:
		res := make(Settings, len(val))
		for k, v := range val {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			res[key] = v
		}
		return res, true
	default:
		return nil, false
	}
}

// Candidate 候选网关，Settings 为调用方提供的覆盖配置
type Candidate struct {
	Name     string
	Settings Settings
}

// Gateways 根据网关名称构造候选网关，覆盖配置为空
func Gateways(names ...string) []Candidate {
	res := make([]Candidate, 0, len(names))
	for _, name := range names {
		res = append(res, Candidate{Name: name})
	}
	return res
}

// ParseCandidates 解析配置中的网关列表，支持以下几种形式：
//
//	[aliyun, yunpian]
//	[aliyun, {yunpian: {signature: xxx}}]
//	{aliyun: {}, yunpian: {signature: xxx}}
//
// 覆盖配置不是映射的条目会被丢弃。映射形式没有顺序，按名称排序。
func ParseCandidates(v any) []Candidate {
	switch val := v.(type) {
	case nil:
		return nil
	case []Candidate:
		return val
	case []string:
		return Gateways(val...)
	case []any:
		res := make([]Candidate, 0, len(val))
		for _, item := range val {
			if name, ok := item.(string); ok {
				res = append(res, Candidate{Name: name})
				continue
			}
			res = append(res, ParseCandidates(item)...)
		}
		return res
	default:
		m, ok := AsSettings(v)
		if !ok {
			return nil
		}
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		res := make([]Candidate, 0, len(names))
		for _, name := range names {
			if m[name] == nil {
				res = append(res, Candidate{Name: name})
				continue
			}
			override, ok := AsSettings(m[name])
			if !ok {
				continue
			}
			res = append(res, Candidate{Name: name, Settings: override})
		}
		return res
	}
}

// ResolvedGateway 合并后的网关配置
type ResolvedGateway struct {
	Name     string
	Settings Settings
}

// ResolvedGateways 合并后的网关配置，保留候选列表的顺序，名称唯一
type ResolvedGateways struct {
	items []ResolvedGateway
	index map[string]int
}

// NewResolvedGateways 按顺序构造，同名网关后者覆盖前者但保留前者的位置
func NewResolvedGateways(items ...ResolvedGateway) ResolvedGateways {
	res := ResolvedGateways{index: make(map[string]int, len(items))}
	for _, item := range items {
		res.Set(item.Name, item.Settings)
	}
	return res
}

// Set 只在构造阶段使用
func (r *ResolvedGateways) Set(name string, settings Settings) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if idx, ok := r.index[name]; ok {
		r.items[idx].Settings = settings
		return
	}
	r.index[name] = len(r.items)
	r.items = append(r.items, ResolvedGateway{Name: name, Settings: settings})
}

// Get 获取网关的配置
func (r ResolvedGateways) Get(name string) (Settings, bool) {
	idx, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.items[idx].Settings, true
}

// Has 是否包含该网关
func (r ResolvedGateways) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Names 按顺序返回网关名称
func (r ResolvedGateways) Names() []string {
	res := make([]string, 0, len(r.items))
	for _, item := range r.items {
		res = append(res, item.Name)
	}
	return res
}

// Items 按顺序返回所有网关配置的副本
func (r ResolvedGateways) Items() []ResolvedGateway {
	res := make([]ResolvedGateway, len(r.items))
	copy(res, r.items)
	return res
}

func (r ResolvedGateways) Len() int {
	return len(r.items)
}
