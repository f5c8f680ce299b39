package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/splitledger/internal/middleware"
	"github.com/SscSPs/splitledger/internal/platform/analytics"
	"github.com/SscSPs/splitledger/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Metrics   *metrics.Collector
	Analytics *analytics.Client
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Track sends a product analytics event when analytics is configured.
func (s *BaseService) Track(accountID, event string, props map[string]any) {
	s.Analytics.Enqueue(accountID, event, props)
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithMetrics records ledger metrics on collector.
func WithMetrics(collector *metrics.Collector) ServiceOption {
	return func(b *BaseService) {
		b.Metrics = collector
	}
}

// WithAnalytics sends product events through client.
func WithAnalytics(client *analytics.Client) ServiceOption {
	return func(b *BaseService) {
		b.Analytics = client
	}
}

func newBaseService(options []ServiceOption) BaseService {
	var b BaseService
	for _, option := range options {
		option(&b)
	}
	return b
}
