package model

import "time"

const (
	timestampLayout      = "2006-01-02T15:04:05"
	timestampMicroLayout = "2006-01-02T15:04:05.000000"
)

// FormatTimestamp 输出本地时间的 ISO-8601 字符串，不带时区；
// 微秒为 0 时省略小数部分。
func FormatTimestamp(t time.Time) string {
	t = t.Local()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(timestampLayout)
	}
	return t.Format(timestampMicroLayout)
}

// ParseTimestamp 解析 FormatTimestamp 的输出（按本地时区），小数秒可有可无
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(timestampLayout, s, time.Local)
}
