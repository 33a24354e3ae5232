package sms

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/errs"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

const (
	codeOK           = 0
	codeBadRequest   = 400
	codeInternalFail = 500
)

// Sender *messenger.Messenger 满足该接口
type Sender interface {
	Send(ctx context.Context, to []string, payload domain.Payload, gateways ...domain.Candidate) (domain.SendOutcome, error)
}

type Handler struct {
	sender Sender
	logger *elog.Component
}

func NewHandler(sender Sender) *Handler {
	return &Handler{
		sender: sender,
		logger: elog.DefaultLogger,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/sms")
	g.POST("/send", h.Send)
}

// Send 只要没有发生非投递错误就返回 200，每个网关的结果在 results 中
func (h *Handler) Send(ctx *gin.Context) {
	var req SendReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, Result[any]{Code: codeBadRequest, Msg: "请求格式错误"})
		return
	}
	payload, err := h.payload(req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, Result[any]{Code: codeBadRequest, Msg: err.Error()})
		return
	}

	outcome, err := h.sender.Send(ctx.Request.Context(), req.To, payload, domain.Gateways(req.Gateways...)...)
	if err != nil {
		h.logger.Error("发送短信失败", elog.FieldErr(err), elog.Any("to", req.To))
		status, code := http.StatusInternalServerError, codeInternalFail
		if errors.Is(err, errs.ErrInvalidParameter) || errors.Is(err, errs.ErrGatewayNotFound) {
			status, code = http.StatusBadRequest, codeBadRequest
		}
		ctx.JSON(status, Result[SendResp]{Code: code, Msg: err.Error(), Data: toSendResp(outcome)})
		return
	}
	ctx.JSON(http.StatusOK, Result[SendResp]{Code: codeOK, Msg: "OK", Data: toSendResp(outcome)})
}

func (h *Handler) payload(req SendReq) (domain.Payload, error) {
	if len(req.To) == 0 {
		return domain.Payload{}, errors.New("手机号码不能为空")
	}
	if req.Content == "" && req.Template == "" {
		return domain.Payload{}, errors.New("内容和模版不能同时为空")
	}
	typ := domain.MessageType(req.Type)
	switch typ {
	case "", domain.MessageTypeText, domain.MessageTypeVoice:
	default:
		return domain.Payload{}, errors.New("未知的消息类型: " + req.Type)
	}
	if req.Template == "" && len(req.Data) == 0 && typ == "" {
		return domain.Plain(req.Content), nil
	}
	return domain.Structured(domain.Message{
		Type:     typ,
		Content:  req.Content,
		Template: req.Template,
		Data:     req.Data,
	}), nil
}

func toSendResp(outcome domain.SendOutcome) SendResp {
	return SendResp{
		ID: strconv.FormatUint(outcome.ID, 10),
		Results: slice.Map(outcome.Results(), func(_ int, src domain.GatewayResult) GatewayResult {
			res := GatewayResult{
				Gateway:   src.Gateway,
				Status:    string(src.Status),
				RequestID: src.Response.RequestID,
				MessageID: src.Response.MessageID,
				Code:      src.Response.Code,
				Message:   src.Response.Message,
			}
			if src.Err != nil {
				res.Error = src.Err.Error()
			}
			return res
		}),
		Succeeded: outcome.Succeeded(),
		Failed:    outcome.Failed(),
	}
}
