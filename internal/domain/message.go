package domain

import (
	"maps"
	"slices"
)

// MessageType 消息类型
type MessageType string

const (
	MessageTypeText  MessageType = "text"  // 文本短信
	MessageTypeVoice MessageType = "voice" // 语音短信
)

// Message 短信消息，构造之后不再修改
type Message struct {
	Type     MessageType
	Content  string            // 文本内容
	Template string            // 模版ID，由模版类网关使用
	Data     map[string]string // 渲染模版时使用的参数
	// Gateways 消息级别指定的网关，为空表示没有偏好
	Gateways []Candidate
}

// MessageType 返回消息类型，默认为文本
func (m Message) MessageType() MessageType {
	if m.Type == "" {
		return MessageTypeText
	}
	return m.Type
}

// TemplateData 返回模版参数的副本
func (m Message) TemplateData() map[string]string {
	return maps.Clone(m.Data)
}

// PreferredGateways 返回消息指定网关的副本
func (m Message) PreferredGateways() []Candidate {
	return slices.Clone(m.Gateways)
}

// Payload 发送载荷，要么是已经构造好的 Message，要么是一个字符串
type Payload struct {
	msg *Message
	raw string
}

// Structured 使用已有的消息作为载荷
func Structured(msg Message) Payload {
	return Payload{msg: &msg}
}

// Plain 使用字符串作为载荷
func Plain(raw string) Payload {
	return Payload{raw: raw}
}

// IsStructured 载荷是否为结构化消息
func (p Payload) IsStructured() bool {
	return p.msg != nil
}

// Normalize 转换为 Message。
// 字符串载荷既作为内容也作为模版ID，交给网关自己决定怎么用。
func (p Payload) Normalize() Message {
	if p.msg != nil {
		return *p.msg
	}
	return Message{
		Type:     MessageTypeText,
		Content:  p.raw,
		Template: p.raw,
	}
}
