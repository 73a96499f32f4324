package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. Timestamps look like "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one step of a command and logs it at debug level with its
// key/value fields, e.g. "load location=layout.json elapsed=1.234ms".
type progress struct {
	logger *log.Logger
	step   string
	kv     []any
	start  time.Time
}

func newProgress(l *log.Logger, step string, kv ...any) *progress {
	return &progress{logger: l, step: step, kv: kv, start: time.Now()}
}

// done logs the step with any extra fields and the elapsed time.
func (p *progress) done(kv ...any) {
	fields := append(append([]any{}, p.kv...), kv...)
	fields = append(fields, "elapsed", time.Since(p.start).Round(time.Microsecond))
	p.logger.Debug(p.step, fields...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for the command handlers.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
