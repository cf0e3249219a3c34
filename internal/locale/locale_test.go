package locale_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/locale"
)

// translationKeys lists every key the application asks for.
var translationKeys = []string{
	config.TKeyWinTitle,
	config.TKeyLblDay,
	config.TKeyLblMonth,
	config.TKeyLblYear,
	config.TKeyLblYears,
	config.TKeyLblMonths,
	config.TKeyLblDays,
	config.TKeyLblLanguage,
	config.TKeyBtnSubmit,
	config.TKeyLblFooter,
	config.TKeyEvtSummary,
	config.TKeyEvtBirth,
	config.TKeyEvtAnonymous,
	config.TKeyWinContacts,
	config.TKeyMenuFile,
	config.TKeyMenuContacts,
	config.TKeyNoContacts,
	config.TKeyColName,
	config.TKeyColDate,
	config.TKeyColAge,
	config.TKeyErrRequired,
	config.TKeyErrNumber,
	config.TKeyErrDayRange,
	config.TKeyErrMonthRange,
	config.TKeyErrYearFuture,
	config.TKeyErrDateInvalid,
	config.TKeyErrDateFuture,
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in every locale JSON file, and that no file carries orphan keys.
func TestI18nIntegrity(t *testing.T) {
	definedKeys := make(map[string]bool, len(translationKeys))
	for _, k := range translationKeys {
		definedKeys[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
			require.NoError(t, err, "Must load active.%s.json", lang)

			var jsonMap map[string]interface{}
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for key := range definedKeys {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
			}
			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				assert.Truef(t, definedKeys[jsonKey], "Key '%s' in active.%s.json is not used", jsonKey, lang)
			}
		})
	}
}

func TestCatalog_Languages(t *testing.T) {
	c := locale.NewCatalog()

	langs := c.Languages()
	assert.ElementsMatch(t, config.SupportedLanguages, langs)
	assert.Equal(t, config.DefaultLanguage, langs[0], "Default language comes first")
	assert.True(t, c.Supports("fr"))
	assert.False(t, c.Supports("de"))
}

func TestCatalog_Translator(t *testing.T) {
	c := locale.NewCatalog()

	tr, err := c.Translator("fr")
	require.NoError(t, err)
	assert.Equal(t, "fr", tr.Language())
	assert.Equal(t, "Ce champ est obligatoire", tr.Msg(config.TKeyErrRequired))

	tr, err = c.Translator("xx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrLangUnsupported)
	assert.Equal(t, config.DefaultLanguage, tr.Language(), "Falls back to the default language")
	assert.Equal(t, "This field is required", tr.Msg(config.TKeyErrRequired))
}

func TestCatalog_Match(t *testing.T) {
	c := locale.NewCatalog()

	tests := []struct {
		name  string
		prefs []string
		want  string
	}{
		{"No preference", nil, "en"},
		{"Bare code", []string{"fr"}, "fr"},
		{"Regional variant", []string{"fr-CA"}, "fr"},
		{"Accept-Language header", []string{"de-DE,de;q=0.9,fr;q=0.8"}, "fr"},
		{"Unsupported only", []string{"de"}, "en"},
		{"First preference wins", []string{"", "en", "fr"}, "en"},
		{"Malformed header skipped", []string{";;;", "fr"}, "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Match(tt.prefs...).Language())
		})
	}
}

func TestTranslator_Plural(t *testing.T) {
	c := locale.NewCatalog()
	en, _ := c.Translator("en")
	fr, _ := c.Translator("fr")

	assert.Equal(t, "year", en.Plural(config.TKeyLblYears, 1))
	assert.Equal(t, "years", en.Plural(config.TKeyLblYears, 24))
	assert.Equal(t, "years", en.Plural(config.TKeyLblYears, 0))
	assert.Equal(t, "an", fr.Plural(config.TKeyLblYears, 0), "French uses the singular for zero")
	assert.Equal(t, "jours", fr.Plural(config.TKeyLblDays, 5))
}

func TestTranslator_Summary(t *testing.T) {
	c := locale.NewCatalog()
	en, _ := c.Translator("en")
	fr, _ := c.Translator("fr")

	assert.Equal(t, "Alice (24 years)", en.Summary("Alice", 24))
	assert.Equal(t, "Alice (1 year)", en.Summary("Alice", 1))
	assert.Equal(t, "Birth of Alice", en.Summary("Alice", 0))
	assert.Equal(t, "Anniversary (3 years)", en.Summary("", 3))
	assert.Equal(t, "Naissance de Chloé", fr.Summary("Chloé", 0))
}

func TestTranslator_MissingKey(t *testing.T) {
	tr, _ := locale.NewCatalog().Translator("en")
	assert.Equal(t, "no_such_key", tr.Msg("no_such_key"))

	var nilTranslator *locale.Translator
	assert.Equal(t, config.TKeyBtnSubmit, nilTranslator.Msg(config.TKeyBtnSubmit))
}
