package messenger

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gitee.com/flycash/easy-sms/internal/config"
	"gitee.com/flycash/easy-sms/internal/domain"
	"gitee.com/flycash/easy-sms/internal/errs"
	"gitee.com/flycash/easy-sms/internal/service/gateway"
	"gitee.com/flycash/easy-sms/internal/service/strategy"
	"github.com/ecodeclub/ekit/bean/option"
	"github.com/gotomicro/ego/core/elog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Messenger 把一条消息分发到多个网关。
// 每个网关都会被尝试，成功之后不会提前结束；
// 网关投递失败（*errs.GatewayError）只记录在结果中，其余错误会中断本次发送并返回给调用方。
type Messenger struct {
	store       config.Store
	registry    gateway.Registry
	strategy    strategy.Strategy
	idGenerator IDGenerator
	parallel    bool

	logger *elog.Component
	tracer trace.Tracer
}

// NewMessenger 创建分发器，store 为只读的全局配置
func NewMessenger(store config.Store, registry gateway.Registry, opts ...option.Option[Messenger]) *Messenger {
	m := &Messenger{
		store:    store,
		registry: registry,
		strategy: strategy.NewOrderStrategy(),
		logger:   elog.DefaultLogger,
		tracer:   otel.Tracer("easy-sms/messenger"),
	}
	option.Apply(m, opts...)
	return m
}

// Send 发送消息。
// 候选网关的优先级：gateways 参数 > 消息指定的网关 > 全局配置 default.gateways，取第一个非空的。
// 返回的结果与实际尝试的网关一一对应；发生非投递错误时返回已经完成的部分结果和该错误。
func (m *Messenger) Send(ctx context.Context, to []string, payload domain.Payload, gateways ...domain.Candidate) (domain.SendOutcome, error) {
	msg := payload.Normalize()

	candidates := gateways
	if len(candidates) == 0 {
		candidates = msg.PreferredGateways()
	}
	if len(candidates) == 0 {
		candidates = config.DefaultGateways(m.store)
	}

	resolved, dropped := Resolve(candidates, m.store)
	for _, name := range dropped {
		m.logger.Warn("网关没有全局配置，忽略", elog.String("gateway", name))
	}

	order := m.applyStrategy(resolved)
	outcome := domain.NewSendOutcome(m.nextID(), order)

	ctx, span := m.tracer.Start(ctx, "Messenger.Send",
		trace.WithAttributes(
			attribute.String("sms.id", strconv.FormatUint(outcome.ID, 10)),
			attribute.String("sms.gateways", strings.Join(order, ",")),
			attribute.Int("sms.receivers", len(to)),
		))
	defer span.End()

	var err error
	if m.parallel {
		err = m.sendParallel(ctx, to, msg, resolved, order, &outcome)
	} else {
		err = m.sendSequential(ctx, to, msg, resolved, order, &outcome)
	}
	if err != nil {
		outcome.Truncate()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		m.logger.Error("发送中断",
			elog.FieldErr(err),
			elog.Any("id", outcome.ID),
			elog.Any("attempted", outcome.Gateways()),
		)
		return outcome, err
	}

	span.SetAttributes(
		attribute.Int("sms.succeeded", len(outcome.Succeeded())),
		attribute.Int("sms.failed", len(outcome.Failed())),
	)
	return outcome, nil
}

// applyStrategy 过滤掉策略返回的重复或者不存在的网关
func (m *Messenger) applyStrategy(resolved domain.ResolvedGateways) []string {
	applied := m.strategy.Apply(resolved)
	order := make([]string, 0, len(applied))
	seen := make(map[string]struct{}, len(applied))
	for _, name := range applied {
		if _, ok := seen[name]; ok || !resolved.Has(name) {
			m.logger.Warn("策略返回了非法的网关，忽略", elog.String("gateway", name))
			continue
		}
		seen[name] = struct{}{}
		order = append(order, name)
	}
	return order
}

func (m *Messenger) sendSequential(ctx context.Context, to []string, msg domain.Message,
	resolved domain.ResolvedGateways, order []string, outcome *domain.SendOutcome,
) error {
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := m.sendOne(ctx, to, msg, name, resolved)
		if err != nil {
			return err
		}
		m.record(outcome, res)
	}
	return nil
}

func (m *Messenger) sendParallel(ctx context.Context, to []string, msg domain.Message,
	resolved domain.ResolvedGateways, order []string, outcome *domain.SendOutcome,
) error {
	results := make([]domain.GatewayResult, len(order))
	eg, ctx := errgroup.WithContext(ctx)
	for i, name := range order {
		i, name := i, name
		eg.Go(func() error {
			res, err := m.sendOne(ctx, to, msg, name, resolved)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	err := eg.Wait()
	// 即使被中断，也保留已经完成的结果
	for _, res := range results {
		if res.Status != "" {
			m.record(outcome, res)
		}
	}
	return err
}

// sendOne 只有网关投递错误会被转换为失败结果，其余错误原样返回
func (m *Messenger) sendOne(ctx context.Context, to []string, msg domain.Message,
	name string, resolved domain.ResolvedGateways,
) (domain.GatewayResult, error) {
	g, err := m.registry.Resolve(name)
	if err != nil {
		return domain.GatewayResult{}, err
	}
	settings, _ := resolved.Get(name)
	resp, err := g.Send(ctx, to, msg, settings.Clone())
	if err == nil {
		return domain.GatewayResult{Gateway: name, Status: domain.SendStatusSuccess, Response: resp}, nil
	}
	if errs.IsGatewayError(err) {
		return domain.GatewayResult{Gateway: name, Status: domain.SendStatusErred, Err: err}, nil
	}
	return domain.GatewayResult{}, fmt.Errorf("网关 %s: %w", name, err)
}

func (m *Messenger) record(outcome *domain.SendOutcome, res domain.GatewayResult) {
	if res.Status == domain.SendStatusSuccess {
		m.logger.Debug("网关发送成功", elog.String("gateway", res.Gateway), elog.Any("id", outcome.ID))
		outcome.RecordSuccess(res.Gateway, res.Response)
		return
	}
	m.logger.Warn("网关发送失败",
		elog.String("gateway", res.Gateway),
		elog.Any("id", outcome.ID),
		elog.FieldErr(res.Err),
	)
	outcome.RecordFailure(res.Gateway, res.Err)
}

func (m *Messenger) nextID() uint64 {
	if m.idGenerator == nil {
		return 0
	}
	id, err := m.idGenerator.NextID()
	if err != nil {
		m.logger.Warn("生成发送ID失败", elog.FieldErr(err))
		return 0
	}
	return id
}
