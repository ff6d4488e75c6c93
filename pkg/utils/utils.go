package utils

import (
	"context"
	"runtime"
	"strings"

	"golang-lwcharts/pkg/logger"
)

// GoSafe runs the given function in a new goroutine and recovers from any panic.
func GoSafe(log *logger.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered", logger.Field("panic", r))
			}
		}()
		fn()
	}()
}

// ToPointer returns a pointer to a copy of value.
func ToPointer[T any](value T) *T {
	return &value
}

// ShouldContinue reports false, with a warning naming the caller, once ctx is done.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		pc, _, _, ok := runtime.Caller(1)
		funcName := "unknown"
		if ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				parts := strings.Split(fn.Name(), "/")
				funcName = parts[len(parts)-1]
			}
		}
		log.Warn("Context cancelled", logger.StringField("caller", funcName))
		return false
	default:
		return true
	}
}
