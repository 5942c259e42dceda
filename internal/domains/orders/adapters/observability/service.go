package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordertypes "github.com/aquaflow/aquaflow-api/internal/domains/orders/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
)

const tracerName = "github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/observability/service"

// Service decorates an orders application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// PlaceOrder creates an order with instrumentation.
func (s *Service) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.PlaceOrder",
		attribute.Int64("order.customer_id", input.CustomerID),
		attribute.Int64("order.area_id", input.AreaID),
		attribute.Int("order.line_count", len(input.Items)),
	)
	defer span.End()

	s.logInfo(ctx, "placing order", slog.Int64("customer.id", input.CustomerID), slog.Int("lines", len(input.Items)))
	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.Int64("customer.id", input.CustomerID))
	}
	if result != nil {
		s.metrics.recordPlaced(ctx)
		span.SetAttributes(attribute.Int64("order.id", result.ID))
		s.logInfo(ctx, "order placed", slog.Int64("order.id", result.ID), slog.Float64("order.total", result.Total))
	}
	return result, nil
}

// GetByID loads a single order aggregate.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.Int64("order.id", id))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

// ListByCustomer returns the customer's order history.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.ListByCustomer", attribute.Int64("customer.id", customerID))
	defer span.End()

	result, err := s.inner.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customer orders", slog.Int64("customer.id", customerID))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

// ListByVendor returns the vendor's incoming orders.
func (s *Service) ListByVendor(ctx context.Context, vendorID int64) ([]*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.ListByVendor", attribute.Int64("vendor.id", vendorID))
	defer span.End()

	result, err := s.inner.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list vendor orders", slog.Int64("vendor.id", vendorID))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

// ChangeStatus moves an order along its lifecycle.
func (s *Service) ChangeStatus(ctx context.Context, input ordertypes.ChangeStatusInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.ChangeStatus",
		attribute.Int64("order.id", input.OrderID),
		attribute.String("order.status.requested", input.Status),
	)
	defer span.End()

	s.logInfo(ctx, "changing order status", slog.Int64("order.id", input.OrderID), slog.String("status", input.Status))
	result, err := s.inner.ChangeStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to change order status",
			slog.Int64("order.id", input.OrderID), slog.String("status", input.Status))
	}
	if result != nil {
		s.metrics.recordStatusChange(ctx, result.Status)
		s.logInfo(ctx, "order status changed", slog.Int64("order.id", result.ID), slog.String("status", string(result.Status)))
	}
	return result, nil
}

// SendMessage appends one thread entry.
func (s *Service) SendMessage(ctx context.Context, input ordertypes.SendMessageInput) (*domain.OrderMessage, error) {
	ctx, span := s.startSpan(ctx, "Service.SendMessage",
		attribute.Int64("order.id", input.OrderID),
		attribute.String("message.sender", input.Sender),
	)
	defer span.End()

	result, err := s.inner.SendMessage(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to send order message", slog.Int64("order.id", input.OrderID))
	}
	if result != nil {
		s.metrics.recordMessage(ctx, result.Sender)
	}
	return result, nil
}

// ListMessages returns the order thread.
func (s *Service) ListMessages(ctx context.Context, orderID int64) ([]*domain.OrderMessage, error) {
	ctx, span := s.startSpan(ctx, "Service.ListMessages", attribute.Int64("order.id", orderID))
	defer span.End()

	result, err := s.inner.ListMessages(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list order messages", slog.Int64("order.id", orderID))
	}
	span.SetAttributes(attribute.Int("message.result.count", len(result)))
	return result, nil
}

// GenerateInvoice issues the order's invoice.
func (s *Service) GenerateInvoice(ctx context.Context, orderID int64) (*domain.Invoice, error) {
	ctx, span := s.startSpan(ctx, "Service.GenerateInvoice", attribute.Int64("order.id", orderID))
	defer span.End()

	s.logInfo(ctx, "generating invoice", slog.Int64("order.id", orderID))
	result, err := s.inner.GenerateInvoice(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to generate invoice", slog.Int64("order.id", orderID))
	}
	if result != nil {
		s.metrics.recordInvoiced(ctx)
		span.SetAttributes(attribute.String("invoice.code", result.Code))
		s.logInfo(ctx, "invoice generated", slog.Int64("order.id", orderID), slog.String("invoice.code", result.Code))
	}
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersPlaced  metric.Int64Counter
	statusChanges metric.Int64Counter
	messagesSent  metric.Int64Counter
	invoicesDrawn metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	statusChanges, _ := m.Int64Counter("orders.service.status_changes", metric.WithDescription("Number of order status transitions"))
	messagesSent, _ := m.Int64Counter("orders.service.messages", metric.WithDescription("Number of order messages sent"))
	invoicesDrawn, _ := m.Int64Counter("orders.service.invoices", metric.WithDescription("Number of invoices generated"))
	return serviceMetrics{
		ordersPlaced:  ordersPlaced,
		statusChanges: statusChanges,
		messagesSent:  messagesSent,
		invoicesDrawn: invoicesDrawn,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context) {
	addCounter(ctx, m.ordersPlaced, 1)
}

func (m serviceMetrics) recordStatusChange(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.statusChanges, 1, attribute.String("order.status", string(status)))
}

func (m serviceMetrics) recordMessage(ctx context.Context, sender domain.Sender) {
	addCounter(ctx, m.messagesSent, 1, attribute.String("message.sender", string(sender)))
}

func (m serviceMetrics) recordInvoiced(ctx context.Context) {
	addCounter(ctx, m.invoicesDrawn, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
