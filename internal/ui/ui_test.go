package ui

import (
	"context"
	"io"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the engine.VCardFetcher interface using testify/mock.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

// setupTestApp initializes a headless Fyne app pinned to 2024-03-20.
func setupTestApp(t *testing.T) (*GoAgeApp, *MockFetcher) {
	// Initialize headless driver
	a := test.NewApp()
	t.Cleanup(a.Quit)

	fetcher := new(MockFetcher)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := NewGoAgeApp(a, ctx, config.DefaultSettings(), fetcher)
	app.Clock = MockClock{CurrentTime: time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)}

	// Force EN locale for predictable strings
	app.Preferences.SetString(config.PrefLanguage, "en")

	// Manually load I18n as Run() is skipped
	app.SetupI18n()
	app.BuildWindow()

	return app, fetcher
}

// fill types a full date into the three entries.
func fill(app *GoAgeApp, day, month, year string) {
	for i, text := range []string{day, month, year} {
		app.Fields[i].entry.SetText("")
		test.Type(app.Fields[i].entry, text)
	}
}

func resultTexts(app *GoAgeApp) []string {
	out := make([]string, 0, 6)
	for _, rw := range app.Results {
		out = append(out, rw.value.Text, rw.unit.Text)
	}
	return out
}

// -----------------------------------------------------------------------------
// Form Tests
// -----------------------------------------------------------------------------

func TestForm_InitialState(t *testing.T) {
	app, _ := setupTestApp(t)

	assert.Equal(t, "Age Calculator", app.Window.Title())
	assert.Equal(t, "DAY", app.Fields[0].label.Text)
	assert.Equal(t, "MONTH", app.Fields[1].label.Text)
	assert.Equal(t, "YEAR", app.Fields[2].label.Text)
	assert.Equal(t, "Calculate", app.SubmitButton.Text)

	assert.Equal(t, []string{"--", "years", "--", "months", "--", "days"}, resultTexts(app))
	for _, fw := range app.Fields {
		assert.Empty(t, fw.errLabel.Text)
	}
}

func TestForm_SubmitValid(t *testing.T) {
	app, _ := setupTestApp(t)

	fill(app, "15", "01", "2000")
	test.Tap(app.SubmitButton)

	assert.Equal(t, []string{"24", "years", "2", "months", "5", "days"}, resultTexts(app))
	assert.Equal(t, engine.Difference{Years: 24, Months: 2, Days: 5}, app.State.Result)
}

func TestForm_SubmitPlurals(t *testing.T) {
	app, _ := setupTestApp(t)

	// 2023-02-19 is exactly 1 year, 1 month and 1 day before the pinned today.
	fill(app, "19", "2", "2023")
	test.Tap(app.SubmitButton)

	assert.Equal(t, []string{"1", "year", "1", "month", "1", "day"}, resultTexts(app))
}

func TestForm_ZeroPlaceholder(t *testing.T) {
	tests := []struct {
		name        string
		placeholder bool
		want        []string
	}{
		{"Enabled", true, []string{"14", "years", "--", "months", "--", "days"}},
		{"Disabled", false, []string{"14", "years", "0", "months", "0", "days"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupTestApp(t)
			app.Settings.ZeroPlaceholder = tt.placeholder

			fill(app, "20", "3", "2010")
			test.Tap(app.SubmitButton)

			assert.Equal(t, tt.want, resultTexts(app))
		})
	}
}

func TestForm_FieldErrorsWhileTyping(t *testing.T) {
	app, _ := setupTestApp(t)

	test.Type(app.Fields[0].entry, "32")
	assert.Equal(t, "Must be a valid day", app.Fields[0].errLabel.Text)

	test.Type(app.Fields[1].entry, "13")
	assert.Equal(t, "Must be a valid month", app.Fields[1].errLabel.Text)

	test.Type(app.Fields[2].entry, "2099")
	assert.Equal(t, "Must be in the past", app.Fields[2].errLabel.Text)

	// Nothing was submitted: no result appears.
	assert.False(t, app.State.HasResult)
}

func TestForm_SubmitEmpty(t *testing.T) {
	app, _ := setupTestApp(t)

	test.Tap(app.SubmitButton)

	for _, fw := range app.Fields {
		assert.Equal(t, "This field is required", fw.errLabel.Text)
	}
	assert.Equal(t, "--", app.Results[0].value.Text)
}

func TestForm_DateErrors(t *testing.T) {
	tests := []struct {
		name             string
		day, month, year string
		want             string
	}{
		{"April 31", "31", "4", "2023", "Must be a valid date"},
		{"Feb 29 common year", "29", "2", "2023", "Must be a valid date"},
		{"Tomorrow", "21", "3", "2024", "Date must be in the past"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupTestApp(t)

			fill(app, tt.day, tt.month, tt.year)
			test.Tap(app.SubmitButton)

			// Whole-date errors are shown under the first field only.
			assert.Equal(t, tt.want, app.Fields[0].errLabel.Text)
			assert.Empty(t, app.Fields[1].errLabel.Text)
			assert.Empty(t, app.Fields[2].errLabel.Text)
		})
	}
}

func TestForm_FailedSubmitKeepsResult(t *testing.T) {
	app, _ := setupTestApp(t)

	fill(app, "15", "1", "2000")
	test.Tap(app.SubmitButton)
	require.True(t, app.State.HasResult)

	fill(app, "31", "4", "2023")
	test.Tap(app.SubmitButton)

	assert.Equal(t, "Must be a valid date", app.Fields[0].errLabel.Text)
	assert.Equal(t, "24", app.Results[0].value.Text, "previous result must survive a failed submission")

	// Editing clears the whole-date error.
	app.Fields[0].entry.SetText("30")
	assert.Empty(t, app.Fields[0].errLabel.Text)
}

func TestForm_EntryRejectsLetters(t *testing.T) {
	app, _ := setupTestApp(t)

	test.Type(app.Fields[2].entry, "19a9x0")
	assert.Equal(t, "1990", app.Fields[2].entry.Text)
	assert.Equal(t, "1990", app.State.Input.Year)
}

// -----------------------------------------------------------------------------
// Localization Tests
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app, _ := setupTestApp(t)

	fill(app, "15", "1", "2000")
	test.Tap(app.SubmitButton)

	app.LangSelect.SetSelected("fr")

	assert.Equal(t, "fr", app.Preferences.String(config.PrefLanguage), "selection must be persisted")
	assert.Equal(t, "fr", app.Translator.Language())
	assert.Equal(t, "JOUR", app.Fields[0].label.Text)
	assert.Equal(t, "ans", app.Results[0].unit.Text)
	assert.Equal(t, "24", app.Results[0].value.Text)
}

func TestLocalization_PreferenceWins(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)

	settings := config.DefaultSettings()
	settings.Language = "en"

	app := NewGoAgeApp(a, context.Background(), settings, nil)
	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.SetupI18n()

	assert.Equal(t, "fr", app.Translator.Language())
	assert.ElementsMatch(t, []string{"en", "fr"}, app.SupportedLanguages)
}

func TestLocalization_UnsupportedFallsBack(t *testing.T) {
	app, _ := setupTestApp(t)

	app.Preferences.SetString(config.PrefLanguage, "xx")
	app.UpdateLocalizer()

	assert.Equal(t, config.DefaultLanguage, app.Translator.Language())
	assert.Equal(t, "Calculate", app.GetMsg(config.TKeyBtnSubmit))
}

func TestMainMenu(t *testing.T) {
	app, _ := setupTestApp(t)

	menu := app.Window.MainMenu()
	require.NotNil(t, menu)
	require.Len(t, menu.Items, 1)
	assert.Equal(t, "File", menu.Items[0].Label)
	assert.Equal(t, "Open vCard...", menu.Items[0].Items[0].Label)
}
