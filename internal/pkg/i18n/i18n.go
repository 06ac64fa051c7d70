// Package i18n localizes the fallback strings shown in toasts and empty
// states. Message files are embedded.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

var localeFiles = []string{"locales/active.en.json", "locales/active.id.json"}

type Translator struct {
	bundle *goi18n.Bundle
}

func NewTranslator() (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, f := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(locales, f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return &Translator{bundle: bundle}, nil
}

// Localizer picks the best language among langs, which may be raw
// Accept-Language header values.
func (t *Translator) Localizer(langs ...string) *Localizer {
	return &Localizer{loc: goi18n.NewLocalizer(t.bundle, langs...)}
}

type Localizer struct {
	loc *goi18n.Localizer
}

// T returns the message id rendered with data. A missing message returns id
// itself so a toast is never blank.
func (l *Localizer) T(id string, data map[string]any) string {
	msg, err := l.loc.Localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil || msg == "" {
		return id
	}
	return msg
}

// Label is shorthand for messages whose only parameter is the record label.
func (l *Localizer) Label(id, label string) string {
	return l.T(id, map[string]any{"Label": label})
}

type ctxKey struct{}

func WithLocalizer(ctx context.Context, l *Localizer) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

var (
	fallbackOnce sync.Once
	fallback     *Localizer
)

// FromContext returns the request's localizer, or an English one.
func FromContext(ctx context.Context) *Localizer {
	if l, ok := ctx.Value(ctxKey{}).(*Localizer); ok && l != nil {
		return l
	}
	fallbackOnce.Do(func() {
		t, err := NewTranslator()
		if err != nil {
			panic(fmt.Sprintf("i18n: embedded locales are invalid: %v", err))
		}
		fallback = t.Localizer("en")
	})
	return fallback
}
