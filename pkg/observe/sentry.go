package observe

import (
	"encoding/json"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"

	"weather-widget/pkg/logger"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second
	_timestampLayout                          = "2006-01-02T15-04-05.000"
)

// SentryHook is an io.Writer plugged next to stdout in the zap core. It decodes each JSON
// log line and forwards error-level entries to Sentry.
type SentryHook struct {
	appZone string
	appName string
	enabled bool
	capture func(*sentry.Event)
	l       *logger.Logger
}

func NewSentryHook(appZone, appName, dsn string, isDebug bool) *SentryHook {
	h := &SentryHook{
		appZone: appZone,
		appName: appName,
		capture: func(e *sentry.Event) { sentry.CaptureEvent(e) },
	}
	if dsn == "" {
		return h
	}

	sentryTransport := sentry.NewHTTPTransport()
	sentryTransport.Timeout = _sentryServerRequestTimeout
	if err := sentry.Init(
		sentry.ClientOptions{
			AttachStacktrace: true,
			Debug:            isDebug,
			Dsn:              dsn,
			Environment:      appZone,
			MaxErrorDepth:    _sentryMaxErrorDepth,
			ServerName:       appName,
			Transport:        sentryTransport,
		}); err != nil {
		log.Println("sentry init error: ", err.Error())
		return h
	}

	h.enabled = true
	return h
}

func (h *SentryHook) Enabled() bool {
	return h.enabled
}

func (*SentryHook) mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel, zapcore.DPanicLevel:
		return sentry.LevelFatal
	}

	return sentry.LevelDebug
}

type logLine struct {
	Level      string `json:"level"`
	AppName    string `json:"app_name"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
}

func (h *SentryHook) Write(p []byte) (int, error) {
	if !h.enabled {
		return len(p), nil
	}

	var line logLine
	if err := json.Unmarshal(p, &line); err != nil {
		h.report(errors.Wrap(err, "[SentryHook] decode log line"))
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(line.Level)
	if err != nil {
		h.report(errors.Wrap(err, "[SentryHook] parse zap level"))
		return len(p), nil
	}
	if level < zapcore.ErrorLevel || line.Message == "" {
		return len(p), nil
	}

	timestamp, err := time.Parse(_timestampLayout, line.Timestamp)
	if err != nil {
		timestamp = time.Now()
	}

	event := sentry.NewEvent()
	event.Environment = h.appZone
	event.Level = h.mapLevel(level)
	event.Timestamp = timestamp
	event.Message = line.Message
	event.Extra["AppName"] = h.appName
	event.Extra["Error"] = line.Error
	event.Extra["CallerFile"] = line.CallerFile
	event.Extra["CallerLine"] = line.CallerLine
	event.Extra["CallerFunc"] = line.CallerFunc
	event.Extra["Stack"] = line.Stack
	event.Exception = append(event.Exception, sentry.Exception{
		Type:       line.Message,
		Value:      line.Error,
		Stacktrace: sentry.NewStacktrace(),
	})
	h.capture(event)

	return len(p), nil
}

// report must not log at error level: the line would come back through Write.
func (h *SentryHook) report(err error) {
	if h.l != nil {
		h.l.Warning(err.Error())
		return
	}
	log.Println(err.Error())
}

func (h *SentryHook) SetLogger(l *logger.Logger) {
	if l != nil {
		h.l = l
	}
}

func (h *SentryHook) Flush() bool {
	if !h.enabled {
		return true
	}
	return sentry.Flush(_sentryFlushTimeout)
}
