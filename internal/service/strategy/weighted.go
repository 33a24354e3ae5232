package strategy

import (
	"sort"
	"strconv"

	"gitee.com/flycash/easy-sms/internal/domain"
)

const weightKey = "weight"

var _ Strategy = (*WeightedStrategy)(nil)

// WeightedStrategy 按照网关配置中的 weight 从大到小排序，权重相同时保持原有顺序。
// 没有配置或者配置非法的权重视为 0。
type WeightedStrategy struct{}

func NewWeightedStrategy() *WeightedStrategy {
	return &WeightedStrategy{}
}

func (w *WeightedStrategy) Apply(gateways domain.ResolvedGateways) []string {
	items := gateways.Items()
	// 根据权重排序
	sort.SliceStable(items, func(i, j int) bool {
		return weight(items[i].Settings) > weight(items[j].Settings)
	})
	res := make([]string, 0, len(items))
	for _, item := range items {
		res = append(res, item.Name)
	}
	return res
}

func weight(settings domain.Settings) int {
	switch v := settings[weightKey].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
