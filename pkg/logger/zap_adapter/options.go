package zap_adapter

import (
	"go.uber.org/zap/zapcore"
)

type options struct {
	level   zapcore.Level
	service string
}

type Option func(*options)

func defaultOptions() options {
	return options{
		level:   zapcore.InfoLevel,
		service: "jamii",
	}
}

// WithLevel принимает текстовый уровень, неизвестное значение оставляет info.
func WithLevel(level string) Option {
	return func(o *options) {
		var l zapcore.Level
		if err := l.UnmarshalText([]byte(level)); err == nil {
			o.level = l
		}
	}
}

func WithService(name string) Option {
	return func(o *options) {
		if name != "" {
			o.service = name
		}
	}
}
