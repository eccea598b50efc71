package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

type requestIDKey struct{}

// WithRequestID attaches the HTTP request id to ctx for operation logs.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// OperationObserver receives the outcome of every service operation.
// monitoring.Metrics implements it.
type OperationObserver interface {
	ObserveOperation(operation, status string, duration time.Duration)
}

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger   *slog.Logger
	config   LogConfig
	observer OperationObserver
}

type LogConfig struct {
	Service     string
	Component   string
	EnableDebug bool
}

func NewServiceLogger(logger *slog.Logger, config LogConfig, observer OperationObserver) *ServiceLogger {
	return &ServiceLogger{
		logger:   logger.With("service", config.Service, "component", config.Component),
		config:   config,
		observer: observer,
	}
}

// operationStatus classifies err for logs and metrics.
func operationStatus(err error) (string, slog.Level) {
	switch {
	case err == nil:
		return "success", slog.LevelInfo
	case IsValidation(err) || IsBusinessRule(err):
		return "rejected", slog.LevelWarn
	case IsUnauthorized(err):
		return "unauthorized", slog.LevelWarn
	case IsNotFound(err):
		return "not_found", slog.LevelInfo
	case IsConflict(err):
		return "conflict", slog.LevelWarn
	default:
		return "error", slog.LevelError
	}
}

// ===== OPERATION LOGGING =====

func (l *ServiceLogger) LogOperation(ctx context.Context, operation, userID, draftID string, duration time.Duration, err error) {
	status, level := operationStatus(err)
	if l.observer != nil {
		l.observer.ObserveOperation(operation, status, duration)
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("user_id", userID),
		slog.String("draft_id", draftID),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}
	if requestID := requestIDFrom(ctx); requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		var ve ValidationErrors
		var bre *BusinessRuleError
		var pe *PermissionError
		switch {
		case errors.As(err, &ve):
			attrs = append(attrs, slog.Int("validation_errors_count", len(ve)))
		case errors.As(err, &bre):
			attrs = append(attrs, slog.String("business_rule", bre.Rule))
		case errors.As(err, &pe):
			attrs = append(attrs, slog.String("permission_action", pe.Action))
		}
	}

	if level == slog.LevelInfo && err == nil && !l.config.EnableDebug && isReadOperation(operation) {
		level = slog.LevelDebug
	}
	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

func isReadOperation(operation string) bool {
	switch operation {
	case "get_draft", "list_drafts", "preview", "draft_category", "draft_stats", "export_draft", "export_drafts":
		return true
	}
	return false
}

func (l *ServiceLogger) LogAudit(ctx context.Context, action, userID, draftID string, metadata map[string]interface{}) {
	attrs := []slog.Attr{
		slog.String("action", action),
		slog.String("user_id", userID),
		slog.String("draft_id", draftID),
		slog.Time("timestamp", time.Now().UTC()),
	}
	for key, value := range metadata {
		attrs = append(attrs, slog.Any("meta_"+key, value))
	}
	l.logger.LogAttrs(ctx, slog.LevelInfo, "Audit: "+action+" draft", attrs...)
}

// ===== CONTEXTUAL LOGGER =====

// ContextualLogger times one operation and logs its result
type ContextualLogger struct {
	*ServiceLogger
	ctx       context.Context
	operation string
	userID    string
	startTime time.Time
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation, userID string) *ContextualLogger {
	return &ContextualLogger{
		ServiceLogger: l,
		ctx:           ctx,
		operation:     operation,
		userID:        userID,
		startTime:     time.Now(),
	}
}

func (cl *ContextualLogger) LogResult(draftID string, err error) {
	cl.LogOperation(cl.ctx, cl.operation, cl.userID, draftID, time.Since(cl.startTime), err)
}

// ===== ERROR FORMATTING HELPERS =====

func FormatError(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	result := map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}

	var ve ValidationErrors
	var bre *BusinessRuleError
	var pe *PermissionError
	switch {
	case errors.As(err, &ve):
		result["type"] = "validation"
		result["count"] = len(ve)
	case errors.As(err, &bre):
		result["type"] = "business_rule"
		result["rule"] = bre.Rule
	case errors.As(err, &pe):
		result["type"] = "permission"
		result["resource"] = pe.Resource
		result["action"] = pe.Action
	case IsNotFound(err):
		result["type"] = "not_found"
	case IsConflict(err):
		result["type"] = "conflict"
	}
	return result
}
