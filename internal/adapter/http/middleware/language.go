package middleware

import (
	"tasktracker/pkg/translator"

	"github.com/gin-gonic/gin"
)

const langKey = "lang"

// LanguageMiddleware negotiates the language of error messages from
// Accept-Language and announces it in Content-Language.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := translator.Match(c.GetHeader("Accept-Language"))
		c.Set(langKey, lang)
		c.Header("Content-Language", lang)
		c.Writer.Header().Add("Vary", "Accept-Language")
		c.Next()
	}
}

// GetLang falls back to English for routes mounted without the middleware.
func GetLang(c *gin.Context) string {
	if lang := c.GetString(langKey); lang != "" {
		return lang
	}
	return translator.LanguageEn
}
