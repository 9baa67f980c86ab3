package event

import (
	"time"

	"github.com/spf13/cast"
)

// Attrs 松散的事件属性集合，按需取值并转换为目标类型。
// 缺失的键返回目标类型的零值。
type Attrs map[string]any

func (a Attrs) Has(key string) bool {
	_, ok := a[key]
	return ok
}

func (a Attrs) String(key string) string {
	return cast.ToString(a[key])
}

func (a Attrs) Int(key string) int {
	return cast.ToInt(a[key])
}

func (a Attrs) Int64(key string) int64 {
	return cast.ToInt64(a[key])
}

func (a Attrs) Float64(key string) float64 {
	return cast.ToFloat64(a[key])
}

func (a Attrs) Bool(key string) bool {
	return cast.ToBool(a[key])
}

func (a Attrs) Time(key string) time.Time {
	return cast.ToTime(a[key])
}

func (a Attrs) Duration(key string) time.Duration {
	return cast.ToDuration(a[key])
}
