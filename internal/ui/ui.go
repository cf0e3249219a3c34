package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/calendar"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/locale"
)

// fieldWidgets groups the widgets of one date input.
type fieldWidgets struct {
	kind     engine.FieldKind
	labelKey string
	label    *widget.Label
	entry    *NumericalEntry
	errLabel *widget.Label
}

// resultWidgets groups the value and unit of one result component.
type resultWidgets struct {
	unitKey string
	value   *canvas.Text
	unit    *canvas.Text
}

// GoAgeApp encapsulates the UI state, preferences, and the form logic.
type GoAgeApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Settings    config.Settings
	Catalog     *locale.Catalog
	Translator  *locale.Translator
	Ctx         context.Context

	Fetcher engine.VCardFetcher
	Clock   engine.Clock // Injected clock for testability (e.g. mocking time travel)

	SupportedLanguages []string

	// Form state. Only touched from the UI goroutine.
	State engine.FormState

	// Widgets, exposed for the headless tests.
	Fields       [3]*fieldWidgets
	Results      [3]*resultWidgets
	SubmitButton *widget.Button
	LangSelect   *widget.Select
	LangLabel    *widget.Label
	Footer       *widget.Label

	// Contacts State
	ContactsMut    sync.RWMutex
	Contacts       []engine.ContactAge
	contactsWindow fyne.Window
}

// NewGoAgeApp constructs the application and wires dependencies.
func NewGoAgeApp(a fyne.App, ctx context.Context, settings config.Settings, fetcher engine.VCardFetcher) *GoAgeApp {
	a.SetIcon(theme.HistoryIcon())

	return &GoAgeApp{
		App:         a,
		Preferences: a.Preferences(),
		Settings:    settings,
		Ctx:         ctx,
		Fetcher:     fetcher,
		Clock:       engine.RealClock{}, // Default to real clock in production
		State:       engine.NewFormState(),
	}
}

// Run builds the form window and blocks in the UI loop until the window is
// closed or the context is cancelled.
func (app *GoAgeApp) Run() {
	app.SetupI18n()
	app.BuildWindow()

	go func() {
		<-app.Ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
		fyne.Do(app.App.Quit)
	}()

	app.Window.ShowAndRun()
}

// BuildWindow creates the main window and its content.
func (app *GoAgeApp) BuildWindow() fyne.Window {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	fields := []struct {
		kind        engine.FieldKind
		labelKey    string
		placeholder string
		maxLength   int
	}{
		{engine.FieldDay, config.TKeyLblDay, config.PlaceholderDay, config.MaxLenDay},
		{engine.FieldMonth, config.TKeyLblMonth, config.PlaceholderMonth, config.MaxLenMonth},
		{engine.FieldYear, config.TKeyLblYear, config.PlaceholderYear, config.MaxLenYear},
	}

	inputs := make([]fyne.CanvasObject, 0, len(fields))
	for i, field := range fields {
		fw := &fieldWidgets{
			kind:     field.kind,
			labelKey: field.labelKey,
			label:    widget.NewLabel(""),
			entry:    NewNumericalEntry(field.maxLength),
			errLabel: widget.NewLabel(""),
		}
		fw.label.TextStyle = fyne.TextStyle{Bold: true}
		fw.entry.PlaceHolder = field.placeholder
		fw.errLabel.TextStyle = fyne.TextStyle{Italic: true}
		fw.errLabel.Importance = widget.DangerImportance

		kind := field.kind
		fw.entry.OnChanged = func(text string) { app.OnFieldChanged(kind, text) }
		fw.entry.OnSubmitted = func(string) { app.Submit() }

		app.Fields[i] = fw
		inputs = append(inputs, container.NewVBox(fw.label, fw.entry, fw.errLabel))
	}

	app.SubmitButton = widget.NewButtonWithIcon("", theme.MoveDownIcon(), app.Submit)
	app.SubmitButton.Importance = widget.HighImportance

	resultKeys := []string{config.TKeyLblYears, config.TKeyLblMonths, config.TKeyLblDays}
	results := make([]fyne.CanvasObject, 0, len(resultKeys))
	for i, key := range resultKeys {
		rw := &resultWidgets{
			unitKey: key,
			value:   canvas.NewText("", theme.Color(theme.ColorNamePrimary)),
			unit:    canvas.NewText("", theme.Color(theme.ColorNameForeground)),
		}
		for _, txt := range []*canvas.Text{rw.value, rw.unit} {
			txt.TextSize = config.ResultTextSize
			txt.TextStyle = fyne.TextStyle{Bold: true, Italic: true}
		}
		app.Results[i] = rw
		results = append(results, container.NewHBox(rw.value, rw.unit))
	}

	app.LangLabel = widget.NewLabel("")
	app.LangSelect = widget.NewSelect(app.SupportedLanguages, app.OnLanguageChanged)
	app.LangSelect.Selected = app.Translator.Language()

	app.Footer = widget.NewLabel("")
	app.Footer.Alignment = fyne.TextAlignCenter
	app.Footer.TextStyle = fyne.TextStyle{Italic: true}

	w.SetMainMenu(app.buildMainMenu())

	content := container.NewPadded(container.NewVBox(
		container.NewGridWithColumns(config.LayoutColumns, inputs...),
		container.NewHBox(layout.NewSpacer(), app.SubmitButton),
		widget.NewSeparator(),
		container.NewVBox(results...),
		widget.NewSeparator(),
		container.NewHBox(app.LangLabel, app.LangSelect),
		app.Footer,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.FormWindowWidth, content.MinSize().Height))

	app.refreshTexts()
	app.render()
	return w
}

// buildMainMenu exposes the contact ages window.
func (app *GoAgeApp) buildMainMenu() *fyne.MainMenu {
	openItem := fyne.NewMenuItem(app.GetMsg(config.TKeyMenuContacts), app.OpenContactsDialog)
	return fyne.NewMainMenu(fyne.NewMenu(app.GetMsg(config.TKeyMenuFile), openItem))
}

// OnFieldChanged records a keystroke: the field is re-validated alone and any
// whole-date error is cleared.
func (app *GoAgeApp) OnFieldChanged(kind engine.FieldKind, text string) {
	app.State = app.State.WithInput(kind, text, app.today())

	slog.Debug(config.MsgFieldChanged,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyField, kind.String(),
		config.LogKeyOutcome, app.State.Outcome(kind).String(),
	)
	app.render()
}

// Submit validates the whole form and, when valid, shows the new result.
func (app *GoAgeApp) Submit() {
	app.State = app.State.Submit(app.today())

	slog.Info(config.MsgSubmit,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyOutcome, app.State.Date.String(),
		config.LogKeyValid, app.State.HasResult && !app.State.DateErrorVisible(),
	)
	app.render()
}

// OnLanguageChanged persists the selection and relabels the window.
func (app *GoAgeApp) OnLanguageChanged(lang string) {
	if lang == "" || lang == app.Translator.Language() {
		return
	}
	app.Preferences.SetString(config.PrefLanguage, lang)
	app.UpdateLocalizer()

	slog.Info(config.MsgLangChanged,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyLang, lang,
	)
	app.refreshTexts()
	app.render()
}

func (app *GoAgeApp) today() calendar.Date {
	return calendar.Today(app.Clock)
}

// refreshTexts sets every static, localized label.
func (app *GoAgeApp) refreshTexts() {
	if app.Window != nil {
		app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
		app.Window.SetMainMenu(app.buildMainMenu())
	}
	for _, fw := range app.Fields {
		fw.label.SetText(app.GetMsg(fw.labelKey))
	}
	app.SubmitButton.SetText(app.GetMsg(config.TKeyBtnSubmit))
	app.LangLabel.SetText(app.GetMsg(config.TKeyLblLanguage))
	app.Footer.SetText(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
}

// render maps the form state onto the widgets.
func (app *GoAgeApp) render() {
	s := app.State

	for _, fw := range app.Fields {
		msg := ""
		if key := s.FieldMessageKey(fw.kind); key != "" {
			msg = app.GetMsg(key)
		} else if key := s.DateMessageKey(); key != "" && fw.kind == engine.FieldDay {
			// The whole-date message sits under the first field.
			msg = app.GetMsg(key)
		}
		fw.errLabel.SetText(msg)

		if s.FieldInvalid(fw.kind) {
			fw.label.Importance = widget.DangerImportance
		} else {
			fw.label.Importance = widget.MediumImportance
		}
		fw.label.Refresh()
	}

	values := []int{s.Result.Years, s.Result.Months, s.Result.Days}
	for i, rw := range app.Results {
		zero := app.Settings.ZeroPlaceholder
		rw.value.Text = engine.FormatComponent(values[i], s.HasResult, zero)
		rw.unit.Text = app.GetPlural(rw.unitKey, engine.PluralCount(values[i], s.HasResult, zero))
		rw.value.Refresh()
		rw.unit.Refresh()
	}
}
