package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"dashboard-service/pkg/config"
)

// Logger wraps logrus so the service controls level, format and output from config.
type Logger struct {
	entry *logrus.Logger
	file  *os.File
}

// NewLogger 根据配置构建日志服务
func NewLogger(cfg *config.Config) *Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.ToLower(cfg.Log.Format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var file *os.File
	switch strings.ToLower(cfg.Log.Output) {
	case "file":
		if cfg.Log.Filename != "" {
			f, ferr := os.OpenFile(cfg.Log.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if ferr == nil {
				file = f
				l.SetOutput(io.MultiWriter(os.Stdout, f))
			} else {
				l.SetOutput(os.Stdout)
			}
		} else {
			l.SetOutput(os.Stdout)
		}
	default:
		l.SetOutput(os.Stdout)
	}

	return &Logger{entry: l, file: file}
}

// Close flushes the underlying file output if any.
func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Close()
	}
}

var global = &Logger{entry: logrus.StandardLogger()}

// SetGlobalLogger 设置全局日志器
func SetGlobalLogger(l *Logger) {
	if l != nil {
		global = l
	}
}

// Debug 携带结构化字段的调试日志
func Debug(msg string, fields map[string]interface{}) {
	global.entry.WithFields(fields).Debug(msg)
}

// Debugf formats and logs at debug level.
func Debugf(format string, args ...interface{}) {
	global.entry.Debugf(format, args...)
}

// Infof formats and logs at info level.
func Infof(format string, args ...interface{}) {
	global.entry.Infof(format, args...)
}

// Warnf formats and logs at warn level.
func Warnf(format string, args ...interface{}) {
	global.entry.Warnf(format, args...)
}

// Errorf formats and logs at error level.
func Errorf(format string, args ...interface{}) {
	global.entry.Errorf(format, args...)
}

// Fatal logs the message and exits.
func Fatal(msg string) {
	global.entry.Fatal(msg)
}
