// Package notify builds the toast messages returned with every mutation.
package notify

import (
	"github.com/fekuna/omnipos-backoffice/internal/backend"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Toast struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func Success(msg string) Toast {
	return Toast{Level: LevelSuccess, Message: msg}
}

func Info(msg string) Toast {
	return Toast{Level: LevelInfo, Message: msg}
}

// Failure surfaces the most specific message available for err: the
// backend's detail, then its message, then fallback.
func Failure(err error, fallback string) Toast {
	return Toast{Level: LevelError, Message: ErrorMessage(err, fallback)}
}

func ErrorMessage(err error, fallback string) string {
	if detail := backend.Detail(err); detail != "" {
		return detail
	}
	return fallback
}
