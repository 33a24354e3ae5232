package sms

// Result 统一的响应格式
type Result[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}

type SendReq struct {
	To       []string          `json:"to"`
	Content  string            `json:"content"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data"`
	// Type text 或者 voice，为空时为 text
	Type string `json:"type"`
	// Gateways 指定本次发送使用的网关，为空时使用默认网关
	Gateways []string `json:"gateways"`
}

type SendResp struct {
	// ID 使用字符串避免前端精度丢失
	ID        string          `json:"id"`
	Results   []GatewayResult `json:"results"`
	Succeeded []string        `json:"succeeded"`
	Failed    []string        `json:"failed"`
}

type GatewayResult struct {
	Gateway   string `json:"gateway"`
	Status    string `json:"status"`
	RequestID string `json:"requestId,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}
