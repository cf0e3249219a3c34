package ui

import (
	"log/slog"

	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/locale"
)

// SetupI18n loads the embedded catalogs and selects the user's language.
func (app *GoAgeApp) SetupI18n() {
	if app.Catalog == nil {
		app.Catalog = locale.NewCatalog()
	}
	app.SupportedLanguages = app.Catalog.Languages()
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
// The preference falls back to the settings file, then to the default language.
func (app *GoAgeApp) UpdateLocalizer() {
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, app.Settings.Language)
	tr, err := app.Catalog.Translator(lang)
	if err != nil {
		slog.Warn(config.ErrLangUnsupported,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
		)
	}
	app.Translator = tr
}

// GetMsg is a helper to translate a key safely.
func (app *GoAgeApp) GetMsg(key string) string {
	return app.Translator.Msg(key)
}

// GetPlural translates a unit label for count.
func (app *GoAgeApp) GetPlural(key string, count int) string {
	return app.Translator.Plural(key, count)
}
