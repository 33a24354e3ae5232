package domain

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/hashicorp/go-multierror"
)

// SendStatus 单个网关的发送状态
type SendStatus string

const (
	SendStatusSuccess SendStatus = "success" // 发送成功
	SendStatusErred   SendStatus = "erred"   // 发送失败
)

// SendResponse 网关发送成功时返回的结果
type SendResponse struct {
	// RequestID 供应商的请求ID
	RequestID string
	// MessageID 供应商分配的消息ID
	MessageID string
	Code      string
	Message   string
	// Raw 供应商的原始响应
	Raw any
}

// GatewayResult 单个网关的发送结果
type GatewayResult struct {
	Gateway  string
	Status   SendStatus
	Response SendResponse // 仅在成功时有值
	Err      error        // 仅在失败时有值
}

// SendOutcome 一次发送的结果，顺序与尝试顺序一致，每个尝试过的网关对应一条记录
type SendOutcome struct {
	// ID 本次发送的唯一标识
	ID      uint64
	results []GatewayResult
	index   map[string]int
}

// NewSendOutcome 预先按尝试顺序占位
func NewSendOutcome(id uint64, gateways []string) SendOutcome {
	res := SendOutcome{
		ID:      id,
		results: make([]GatewayResult, len(gateways)),
		index:   make(map[string]int, len(gateways)),
	}
	for i, name := range gateways {
		res.results[i].Gateway = name
		res.index[name] = i
	}
	return res
}

// RecordSuccess 记录发送成功
func (o *SendOutcome) RecordSuccess(gateway string, resp SendResponse) {
	o.record(GatewayResult{Gateway: gateway, Status: SendStatusSuccess, Response: resp})
}

// RecordFailure 记录发送失败
func (o *SendOutcome) RecordFailure(gateway string, err error) {
	o.record(GatewayResult{Gateway: gateway, Status: SendStatusErred, Err: err})
}

func (o *SendOutcome) record(res GatewayResult) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if idx, ok := o.index[res.Gateway]; ok {
		o.results[idx] = res
		return
	}
	o.index[res.Gateway] = len(o.results)
	o.results = append(o.results, res)
}

// Truncate 丢弃没有记录结果的占位，用于发送被中断的情况
func (o *SendOutcome) Truncate() {
	kept := slice.FilterDelete(o.results, func(_ int, src GatewayResult) bool {
		return src.Status == ""
	})
	o.results = kept
	o.index = make(map[string]int, len(kept))
	for i, r := range kept {
		o.index[r.Gateway] = i
	}
}

// Get 获取单个网关的结果
func (o SendOutcome) Get(gateway string) (GatewayResult, bool) {
	idx, ok := o.index[gateway]
	if !ok {
		return GatewayResult{}, false
	}
	return o.results[idx], true
}

// Gateways 按尝试顺序返回网关名称
func (o SendOutcome) Gateways() []string {
	return slice.Map(o.results, func(_ int, src GatewayResult) string {
		return src.Gateway
	})
}

// Results 按尝试顺序返回所有结果的副本
func (o SendOutcome) Results() []GatewayResult {
	res := make([]GatewayResult, len(o.results))
	copy(res, o.results)
	return res
}

func (o SendOutcome) Len() int {
	return len(o.results)
}

// Succeeded 发送成功的网关
func (o SendOutcome) Succeeded() []string {
	return o.filter(SendStatusSuccess)
}

// Failed 发送失败的网关
func (o SendOutcome) Failed() []string {
	return o.filter(SendStatusErred)
}

func (o SendOutcome) filter(status SendStatus) []string {
	return slice.FilterMap(o.results, func(_ int, src GatewayResult) (string, bool) {
		return src.Gateway, src.Status == status
	})
}

// Err 汇总所有失败网关的错误，没有失败时返回 nil
func (o SendOutcome) Err() error {
	var err *multierror.Error
	for _, r := range o.results {
		if r.Status == SendStatusErred {
			err = multierror.Append(err, r.Err)
		}
	}
	return err.ErrorOrNil()
}
