package errs

import (
	"errors"
	"fmt"
	"strings"
)

// 定义统一的错误类型
var (
	ErrInvalidParameter = errors.New("参数错误")
	ErrInvalidConfig    = errors.New("配置错误")
	ErrInvalidSettings  = errors.New("网关配置非法")
	ErrGatewayNotFound  = errors.New("网关不存在")
	ErrUnknownStrategy  = errors.New("未知的网关选择策略")

	// ErrGatewayFailed 网关投递失败，由 GatewayError 包裹
	ErrGatewayFailed = errors.New("网关发送失败")
)

// GatewayError 网关投递失败。
// 只有这一类错误会被调度器隔离并记录到结果里，其余错误都会中断本次发送。
type GatewayError struct {
	Gateway string
	// Code 供应商返回的错误码，可能为空
	Code    string
	Message string
	// Delivered 逐个号码发送时，出错之前已经发出的消息 ID
	Delivered []string
	Err       error
}

// NewGatewayError 创建网关投递错误
func NewGatewayError(gateway, code, message string) *GatewayError {
	return &GatewayError{
		Gateway: gateway,
		Code:    code,
		Message: message,
	}
}

// WrapGatewayError 把传输层或者 SDK 的错误包装成网关投递错误
func WrapGatewayError(gateway string, err error) *GatewayError {
	return &GatewayError{
		Gateway: gateway,
		Message: err.Error(),
		Err:     err,
	}
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("%s: gateway = %s, message = %s", ErrGatewayFailed, e.Gateway, e.Message)
	if e.Code != "" {
		msg = fmt.Sprintf("%s: gateway = %s, code = %s, message = %s", ErrGatewayFailed, e.Gateway, e.Code, e.Message)
	}
	if len(e.Delivered) > 0 {
		msg = fmt.Sprintf("%s, delivered = %s", msg, strings.Join(e.Delivered, ","))
	}
	return msg
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func (e *GatewayError) Is(target error) bool {
	return target == ErrGatewayFailed
}

// WithDelivered 记录部分号码已经发出的消息 ID。
// err 不是网关投递错误或者 ids 为空时原样返回。
func WithDelivered(err error, ids []string) error {
	var ge *GatewayError
	if len(ids) == 0 || !errors.As(err, &ge) {
		return err
	}
	ge.Delivered = append(ge.Delivered, ids...)
	return err
}

// IsGatewayError 判断 err 是否为网关投递错误
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
