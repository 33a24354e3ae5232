package messenger

import (
	"gitee.com/flycash/easy-sms/internal/config"
	"gitee.com/flycash/easy-sms/internal/domain"
)

// Resolve 合并网关的全局配置和调用方提供的覆盖配置，覆盖配置中的键优先。
// 全局配置中没有的网关会被丢弃，并通过 dropped 返回：
// 调用方可以调整已知网关的配置，但不能引入未知的网关。
func Resolve(candidates []domain.Candidate, store config.Store) (resolved domain.ResolvedGateways, dropped []string) {
	for _, c := range candidates {
		global := config.GatewaySettings(store, c.Name)
		if c.Name == "" || len(global) == 0 {
			dropped = append(dropped, c.Name)
			continue
		}
		resolved.Set(c.Name, global.Merge(c.Settings))
	}
	return resolved, dropped
}
