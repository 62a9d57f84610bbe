// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

// Package i18n provides localization for the HTML views and CLI help text.
// It uses the go-i18n library to load the embedded translation files. The
// JSON API is not localized.
package i18n

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	lang      = "en"
)

func newBundle() *i18n.Bundle {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			continue
		}
		_, _ = b.ParseMessageFileBytes(data, f.Name())
	}
	return b
}

// Init loads the bundle and sets the process default language.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	if bundle == nil {
		bundle = newBundle()
	}
	lang = l
	localizer = i18n.NewLocalizer(bundle, l)
}

// GetLang returns the process default language.
func GetLang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// GetAvailableLocales returns the language tags that have a translation file.
func GetAvailableLocales() []string {
	ensure()
	mu.RLock()
	defer mu.RUnlock()
	tags := bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.String())
	}
	return out
}

func ensure() {
	mu.RLock()
	ready := localizer != nil
	mu.RUnlock()
	if !ready {
		Init("en")
	}
}

// T translates a message by its ID in the default language. The optional
// data map fills template placeholders. An unknown ID is returned unchanged.
func T(messageID string, data ...map[string]any) string {
	ensure()
	mu.RLock()
	l := localizer
	mu.RUnlock()
	return localize(l, messageID, data)
}

// Localizer translates for one request.
type Localizer struct {
	l *i18n.Localizer
}

// For returns a Localizer preferring the languages of an Accept-Language
// header value, falling back to the process default language.
func For(acceptLanguage string) Localizer {
	ensure()
	mu.RLock()
	defer mu.RUnlock()
	return Localizer{l: i18n.NewLocalizer(bundle, acceptLanguage, lang)}
}

// T translates messageID for the request's language.
func (lz Localizer) T(messageID string, data ...map[string]any) string {
	if lz.l == nil {
		return T(messageID, data...)
	}
	return localize(lz.l, messageID, data)
}

// Lang returns the language tag the localizer resolves to.
func (lz Localizer) Lang() string {
	if lz.l == nil {
		return GetLang()
	}
	_, tag, err := lz.l.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: "web.users.title"})
	if err != nil {
		return GetLang()
	}
	return tag.String()
}

func localize(l *i18n.Localizer, messageID string, data []map[string]any) string {
	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	msg, err := l.Localize(cfg)
	if err != nil {
		return messageID
	}
	return msg
}
