// Package locale loads the embedded message catalogs and translates
// user-facing strings for the desktop form, the web form and the CLI.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-age/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// Catalog holds every embedded translation. It is safe for concurrent use
// once built.
type Catalog struct {
	bundle    *i18n.Bundle
	languages []string
	matcher   language.Matcher
}

// NewCatalog parses the embedded locale files.
// Files that fail to load are logged and skipped, so the catalog is always usable.
func NewCatalog() *Catalog {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
		detected = append(detected, langCode)
	}

	// The default language goes first: the matcher falls back to index 0.
	slices.SortFunc(detected, func(a, b string) int {
		switch {
		case a == config.DefaultLanguage:
			return -1
		case b == config.DefaultLanguage:
			return 1
		}
		return strings.Compare(a, b)
	})

	tags := make([]language.Tag, 0, len(detected))
	for _, code := range detected {
		tags = append(tags, language.Make(code))
	}

	return &Catalog{
		bundle:    bundle,
		languages: detected,
		matcher:   language.NewMatcher(tags),
	}
}

// Languages returns the ISO 639-1 codes of the loaded catalogs, default first.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.languages)
}

// Supports reports whether lang has a loaded catalog.
func (c *Catalog) Supports(lang string) bool {
	return slices.Contains(c.languages, lang)
}

// Translator returns a translator for lang.
// An unsupported language is an error; the translator then uses the default language.
func (c *Catalog) Translator(lang string) (*Translator, error) {
	if !c.Supports(lang) {
		return c.newTranslator(config.DefaultLanguage), fmt.Errorf("%s: %q", config.ErrLangUnsupported, lang)
	}
	return c.newTranslator(lang), nil
}

// Match picks the best supported language for a list of preferences.
// Each preference may be a bare code ("fr") or a full Accept-Language
// header value ("fr-CH, fr;q=0.9, en;q=0.8"). Earlier preferences win.
func (c *Catalog) Match(prefs ...string) *Translator {
	for _, pref := range prefs {
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		if _, idx, conf := c.matcher.Match(tags...); conf != language.No && idx < len(c.languages) {
			return c.newTranslator(c.languages[idx])
		}
	}
	return c.newTranslator(config.DefaultLanguage)
}

func (c *Catalog) newTranslator(lang string) *Translator {
	return &Translator{
		lang:      lang,
		localizer: i18n.NewLocalizer(c.bundle, lang),
	}
}

// Translator renders messages in one language.
type Translator struct {
	lang      string
	localizer *i18n.Localizer
}

// Language returns the ISO 639-1 code the translator renders.
func (t *Translator) Language() string {
	return t.lang
}

// Msg is a helper to translate a key safely.
// A missing key is logged and returned as is.
func (t *Translator) Msg(key string) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: key})
}

// Plural translates a key whose text depends on count.
func (t *Translator) Plural(key string, count int) string {
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: map[string]interface{}{"Count": count},
		PluralCount:  count,
	})
}

// Summary renders the title of an anniversary event.
func (t *Translator) Summary(name string, age int) string {
	if name == "" {
		name = t.Msg(config.TKeyEvtAnonymous)
	}
	if age == 0 {
		return t.localize(&i18n.LocalizeConfig{
			MessageID:    config.TKeyEvtBirth,
			TemplateData: map[string]interface{}{"Name": name},
		})
	}
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    config.TKeyEvtSummary,
		TemplateData: map[string]interface{}{"Name": name, "Age": age},
		PluralCount:  age,
	})
}

func (t *Translator) localize(cfg *i18n.LocalizeConfig) string {
	if t == nil || t.localizer == nil {
		return cfg.MessageID
	}
	msg, err := t.localizer.Localize(cfg)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, cfg.MessageID,
			config.LogKeyError, err,
		)
		return cfg.MessageID
	}
	return msg
}
