package entity

import (
	"time"

	"github.com/google/uuid"
)

// Clock - источник текущего времени.
type Clock interface {
	Now() time.Time
}

// Generator выдает время и уникальные идентификаторы для новых сущностей.
// Передается в конструкторы явно, чтобы тесты могли подставить детерминированную реализацию.
type Generator interface {
	Clock
	NewID() string
}

type systemGenerator struct{}

// SystemGenerator - реализация на time.Now (UTC) и UUID v4.
func SystemGenerator() Generator {
	return systemGenerator{}
}

func (systemGenerator) Now() time.Time {
	return time.Now().UTC()
}

func (systemGenerator) NewID() string {
	return uuid.NewString()
}
