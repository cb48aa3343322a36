package entity

import (
	"encoding/json"
	"time"
)

// Optional - значение поля патча. Set=false значит "не трогать".
// Для указателей Set=true и Value=nil значит "очистить".
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some оборачивает заданное значение.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Get возвращает значение и признак того, что оно задано.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// OrElse возвращает значение или def, если оно не задано.
func (o Optional[T]) OrElse(def T) T {
	if o.Set {
		return o.Value
	}
	return def
}

// UnmarshalJSON вызывается только для присутствующего ключа, поэтому
// отсутствие ключа и явный null различаются.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

// DateOf - удобный конструктор *time.Time.
func DateOf(t time.Time) *time.Time {
	return &t
}

func cloneDate(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
