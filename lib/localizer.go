package lib

import (
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var bundle *i18n.Bundle

type LanguageConfiguration struct {
	Path string
}

func LanguageBundle() *i18n.Bundle {
	return bundle
}

func SetupI18n(root string, config *LanguageConfiguration) {
	bundle = i18n.NewBundle(language.English)
	bundle.MustLoadMessageFile(path.Join(root, config.Path, "active.en.json"))
	bundle.MustLoadMessageFile(path.Join(root, config.Path, "active.ja.json"))
}

type Localizer struct {
	bundle           *i18n.Bundle
	defaultLocalizer *i18n.Localizer
}

func NewLocalizer(langOrders ...string) *Localizer {
	return &Localizer{
		bundle:           bundle,
		defaultLocalizer: i18n.NewLocalizer(bundle, langOrders...),
	}
}

func (l *Localizer) Localize(messageID string, templateData interface{}) string {
	msg, err := l.defaultLocalizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: templateData,
	})
	if err != nil {
		return messageID
	}
	return msg
}

func (l *Localizer) LocalizeWithDefault(messageID string, templateData interface{}, defaultStr string) string {
	msg, err := l.defaultLocalizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: templateData,
	})
	if err != nil {
		return defaultStr
	}
	return msg
}
