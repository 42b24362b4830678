package log

import (
	"context"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// SetLevel adjusts the global log level from a config string
// (debug, info, warn, error). Unknown values fall back to info.
func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// withRequestID enriches an event with the request_id carried in ctx, if any.
func withRequestID(ctx context.Context, e *zerolog.Event) *zerolog.Event {
	if ctx == nil {
		return e
	}
	if requestID, ok := ctx.Value("request_id").(string); ok && requestID != "" {
		e = e.Str("request_id", requestID)
	}
	return e
}

func Debugf(ctx context.Context, format string, args ...any) {
	withRequestID(ctx, logger.Debug()).Msgf(format, args...)
}

func Info(ctx context.Context, msg string) {
	withRequestID(ctx, logger.Info()).Msg(msg)
}

func Infof(ctx context.Context, format string, args ...any) {
	withRequestID(ctx, logger.Info()).Msgf(format, args...)
}

func Warn(ctx context.Context, msg string) {
	withRequestID(ctx, logger.Warn()).Msg(msg)
}

func Warnf(ctx context.Context, format string, args ...any) {
	withRequestID(ctx, logger.Warn()).Msgf(format, args...)
}

func Error(ctx context.Context, err error, msg string) {
	withRequestID(ctx, logger.Error().Err(err)).Msg(msg)
}

func Errorf(ctx context.Context, err error, format string, args ...any) {
	withRequestID(ctx, logger.Error().Err(err)).Msgf(format, args...)
}

// ErrorWithStack logs an error together with the current goroutine stack.
func ErrorWithStack(ctx context.Context, err error, msg string) {
	withRequestID(ctx, logger.Error().Err(err).Bytes("stack", debug.Stack())).Msg(msg)
}

func Fatal(ctx context.Context, err error, msg string) {
	withRequestID(ctx, logger.Fatal().Err(err)).Msg(msg)
}

// RequestStart logs the beginning of an HTTP request, truncating the body
// to keep log lines bounded.
func RequestStart(ctx context.Context, req *http.Request, body []byte) {
	const maxLoggedBody = 1024

	e := withRequestID(ctx, logger.Info()).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("remote", req.RemoteAddr)
	if len(body) > 0 {
		if len(body) > maxLoggedBody {
			body = body[:maxLoggedBody]
		}
		e = e.Bytes("body", body)
	}
	e.Msg("request started")
}

// RequestEnd logs the completion of an HTTP request.
func RequestEnd(ctx context.Context, req *http.Request, status int, duration time.Duration, size int) {
	withRequestID(ctx, logger.Info()).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", status).
		Dur("duration", duration).
		Int("response_size", size).
		Msg("request completed")
}

// PanicLog records a recovered panic from the HTTP layer.
func PanicLog(ctx context.Context, req *http.Request, recovered any) {
	withRequestID(ctx, logger.Error()).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Interface("panic", recovered).
		Bytes("stack", debug.Stack()).
		Msg("panic recovered")
}
