package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayload_Normalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		payload Payload
		want    Message
	}{
		{
			name:    "字符串同时作为内容和模版",
			payload: Plain("hello"),
			want: Message{
				Type:     MessageTypeText,
				Content:  "hello",
				Template: "hello",
			},
		},
		{
			name:    "空字符串不做校验",
			payload: Plain(""),
			want:    Message{Type: MessageTypeText},
		},
		{
			name: "结构化消息原样返回",
			payload: Structured(Message{
				Content:  "您的验证码是 1234",
				Template: "SMS_001",
				Data:     map[string]string{"code": "1234"},
				Gateways: Gateways("aliyun"),
			}),
			want: Message{
				Content:  "您的验证码是 1234",
				Template: "SMS_001",
				Data:     map[string]string{"code": "1234"},
				Gateways: []Candidate{{Name: "aliyun"}},
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.payload.Normalize())
		})
	}
}

func TestMessage_Copies(t *testing.T) {
	t.Parallel()

	msg := Structured(Message{
		Data:     map[string]string{"code": "1234"},
		Gateways: Gateways("aliyun"),
	}).Normalize()

	data := msg.TemplateData()
	data["code"] = "0000"
	gateways := msg.PreferredGateways()
	gateways[0].Name = "yunpian"

	assert.Equal(t, "1234", msg.Data["code"])
	assert.Equal(t, "aliyun", msg.Gateways[0].Name)
	assert.Equal(t, MessageTypeText, msg.MessageType())
}
