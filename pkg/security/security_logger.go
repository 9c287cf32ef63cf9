package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginBlocked       EventType = "login_blocked"
	EventLoginSuccess       EventType = "login_success"
	EventAccountActivated   EventType = "account_activated"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventAdminDenied        EventType = "admin_denied"
	EventBlockCreated       EventType = "block_created"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Event        EventType
	SubjectType  string // "email", "ip", "user_id"
	SubjectValue string // masked or hashed
	IP           string
	UserAgent    string
	RequestID    string
	Details      map[string]any
}

// PersistFunc stores a security event outside of the log stream.
type PersistFunc func(ctx context.Context, record EventRecord) error

// EventRecord is a SecurityEvent stamped by the logger that emitted it.
type EventRecord struct {
	SecurityEvent
	Service     string
	Environment string
	Level       string
	At          time.Time
}

// SecurityLogger writes security events through a dedicated zap logger.
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
	persist     PersistFunc
	persistWait time.Duration
}

var (
	defaultLogger *SecurityLogger
	defaultOnce   sync.Once
)

// NewSecurityLogger builds a production zap logger writing JSON to stdout.
func NewSecurityLogger(serviceName, environment string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddStacktrace(zapcore.DPanicLevel))
	if err != nil {
		logger = zap.NewNop()
	}
	return &SecurityLogger{zapLogger: logger, serviceName: serviceName, environment: environment, persistWait: 5 * time.Second}
}

// NewSecurityLoggerWith wraps an existing zap logger. Used by tests.
func NewSecurityLoggerWith(zl *zap.Logger, serviceName, environment string) *SecurityLogger {
	return &SecurityLogger{zapLogger: zl, serviceName: serviceName, environment: environment, persistWait: 5 * time.Second}
}

// SetPersistFunc makes every logged event also go to f, asynchronously.
func (sl *SecurityLogger) SetPersistFunc(f PersistFunc) {
	sl.persist = f
}

// NewNopSecurityLogger discards every event.
func NewNopSecurityLogger() *SecurityLogger {
	return &SecurityLogger{zapLogger: zap.NewNop(), persistWait: 5 * time.Second}
}

// SetDefaultLogger replaces the process-wide security logger.
func SetDefaultLogger(sl *SecurityLogger) {
	defaultOnce.Do(func() {})
	defaultLogger = sl
}

// DefaultLogger returns the process-wide security logger.
func DefaultLogger() *SecurityLogger {
	defaultOnce.Do(func() {
		if defaultLogger == nil {
			defaultLogger = NewSecurityLogger("cv-backend", "development")
		}
	})
	return defaultLogger
}

func levelFor(event EventType) zapcore.Level {
	switch event {
	case EventLoginSuccess, EventAccountActivated:
		return zapcore.InfoLevel
	case EventLoginBlocked, EventBlockCreated, EventAdminDenied:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func (sl *SecurityLogger) Log(_ context.Context, event SecurityEvent) {
	at := time.Now().UTC()
	level := levelFor(event.Event)
	fields := []zap.Field{
		zap.String("service", sl.serviceName),
		zap.String("env", sl.environment),
		zap.String("event", string(event.Event)),
		zap.Time("at", at),
	}
	if event.SubjectType != "" {
		fields = append(fields,
			zap.String("subject_type", event.SubjectType),
			zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}
	sl.zapLogger.Log(level, string(event.Event), fields...)

	if sl.persist == nil {
		return
	}
	record := EventRecord{
		SecurityEvent: event,
		Service:       sl.serviceName,
		Environment:   sl.environment,
		Level:         level.String(),
		At:            at,
	}
	// The request context may already be canceled once the handler returns.
	go func(r EventRecord) {
		ctx, cancel := context.WithTimeout(context.Background(), sl.persistWait)
		defer cancel()
		if err := sl.persist(ctx, r); err != nil {
			sl.zapLogger.Error("failed to persist security event",
				zap.String("event", string(r.Event)), zap.Error(err))
		}
	}(record)
}

func (sl *SecurityLogger) LogLoginFailed(ctx context.Context, email, ip, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginFailed,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		Details:      map[string]any{"reason": reason},
	})
}

func (sl *SecurityLogger) LogLoginBlocked(ctx context.Context, email, ip string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginBlocked,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
	})
}

func (sl *SecurityLogger) LogLoginSuccess(ctx context.Context, userID, ip string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginSuccess,
		SubjectType:  "user_id",
		SubjectValue: userID,
		IP:           ip,
	})
}

func (sl *SecurityLogger) LogBlockCreated(ctx context.Context, subjectType, subjectValue, ip string, durationMinutes int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventBlockCreated,
		SubjectType:  subjectType,
		SubjectValue: maskValue(subjectType, subjectValue),
		IP:           ip,
		Details:      map[string]any{"duration_minutes": durationMinutes},
	})
}

func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventRateLimitTriggered,
		IP:        ip,
		RequestID: requestID,
		Details:   map[string]any{"endpoint": endpoint},
	})
}

func (sl *SecurityLogger) LogAdminDenied(ctx context.Context, userID, ip, requestID, path string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventAdminDenied,
		SubjectType:  "user_id",
		SubjectValue: userID,
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]any{"path": path},
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	switch {
	case len(email) < 3:
		return "***"
	case at <= 1:
		return "***" + email[1:]
	default:
		return email[:1] + "***" + email[at:]
	}
}

// HashValue returns a short SHA-256 fingerprint for PII-free correlation.
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func maskValue(subjectType, value string) string {
	switch subjectType {
	case "email":
		return MaskEmail(value)
	case "ip", "user_id":
		return value
	default:
		return HashValue(value)
	}
}
