package apierrors

import (
	"fmt"

	"tasktracker/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
)

// JsonErr represents the JSON structure for apierrors.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

// Err represents the error with a code and message.
type Err struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface for JsonErr.
func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return JsonErr{ErrDetails: Err{Code: code, Message: GetTransErrorMsg(msgKey, lang)}}
}

// GetTransErrorMsg retrieves the translated error message. A key missing in
// lang is looked up in English, and the key itself is returned when neither
// catalog has it.
func GetTransErrorMsg(msgKey string, lang string) string {
	if translator.Translator == nil {
		zap.L().Warn("translator not initialized", zap.String("message_id", msgKey))
		return msgKey
	}

	localizer := i18n.NewLocalizer(translator.Translator, lang, translator.LanguageEn)
	msg, tag, err := localizer.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: msgKey})
	if err != nil || msg == "" {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}

	if base, _ := tag.Base(); lang != "" && base.String() != lang {
		zap.L().Debug("translation fell back", zap.String("lang", lang), zap.String("used", tag.String()), zap.String("message_id", msgKey))
	}
	return msg
}
