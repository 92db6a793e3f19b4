// Package i18n renders the bot's user-facing text from the embedded TOML
// catalogs. Nested tables become dotted message ids ([ui.button] join ->
// "ui.button.join").
package i18n

import (
	"embed"
	"io/fs"
	"log"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"eventbot/internal/ports/output"
)

//go:embed active.*.toml
var catalogs embed.FS

var _ output.T = (*Translator)(nil)

// Translator resolves a requested locale to the closest loaded catalog and
// keeps one localizer per requested locale.
type Translator struct {
	bundle   *i18n.Bundle
	fallback language.Tag
	matcher  language.Matcher

	localizers sync.Map // locale -> *i18n.Localizer
	missing    sync.Map // key -> struct{}, warned once
}

// NewTranslator loads every embedded catalog. An unknown defaultLocale
// falls back to Russian.
func NewTranslator(defaultLocale string) *Translator {
	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		log.Printf("⚠️ i18n: locale %q invalide, repli sur le russe", defaultLocale)
		fallback = language.Russian
	}
	bundle := i18n.NewBundle(fallback)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, _ := fs.Glob(catalogs, "active.*.toml")
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(catalogs, file); err != nil {
			log.Printf("⚠️ i18n: échec du chargement de %s: %v", file, err)
		}
	}

	// The fallback comes first so that the matcher prefers it on ties.
	tags := []language.Tag{fallback}
	for _, tag := range bundle.LanguageTags() {
		if tag != fallback {
			tags = append(tags, tag)
		}
	}
	return &Translator{
		bundle:   bundle,
		fallback: fallback,
		matcher:  language.NewMatcher(tags),
	}
}

// Locales lists the languages that have a catalog.
func (t *Translator) Locales() []language.Tag {
	return t.bundle.LanguageTags()
}

// T renders key for locale. A locale without a catalog uses the closest one
// ("ru-RU" -> ru) or the default; an unknown key renders as itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	msg, err := t.localizer(locale).Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		if _, seen := t.missing.LoadOrStore(key, struct{}{}); !seen {
			log.Printf("⚠️ i18n: clé %s introuvable (%s): %v", key, locale, err)
		}
		return key
	}
	return msg
}

func (t *Translator) localizer(locale string) *i18n.Localizer {
	if l, ok := t.localizers.Load(locale); ok {
		return l.(*i18n.Localizer)
	}
	tag := t.fallback
	if locale != "" {
		tag, _ = language.MatchStrings(t.matcher, locale)
	}
	base, _ := tag.Base()
	l := i18n.NewLocalizer(t.bundle, base.String(), t.fallback.String())
	actual, _ := t.localizers.LoadOrStore(locale, l)
	return actual.(*i18n.Localizer)
}
