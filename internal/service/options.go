package service

import "time"

// Clock 返回当前时间，测试中可替换
type Clock func() time.Time

type options struct {
	now Clock
}

type Option func(*options)

func WithClock(c Clock) Option { return func(o *options) { o.now = c } }

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
