package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-backoffice/internal/pkg/i18n"
)

// Locale picks the toast language from ?lang or Accept-Language, falling back
// to defaultLang.
func Locale(t *i18n.Translator, defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		langs := []string{}
		if lang := c.Query("lang"); lang != "" {
			langs = append(langs, lang)
		}
		if accept := c.GetHeader("Accept-Language"); accept != "" {
			langs = append(langs, accept)
		}
		langs = append(langs, defaultLang)

		ctx := i18n.WithLocalizer(c.Request.Context(), t.Localizer(langs...))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
