package server

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tartampluch/go-age/internal/calendar"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/locale"
)

//go:embed templates/*.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

type fieldView struct {
	Name        string
	Label       string
	Value       string
	Placeholder string
	MaxLength   int
	Invalid     bool
	Error       string
}

type resultView struct {
	Value string
	Unit  string
}

// previousView is the last successful result, posted back with the next submission.
type previousView struct {
	Years, Months, Days int
}

type pageView struct {
	Lang          string
	Title         string
	Fields        []fieldView
	Submit        string
	Results       []resultView
	Previous      *previousView
	Languages     []string
	LanguageLabel string
	Footer        string
}

// fieldSpecs describes how each engine field is presented, in display order.
var fieldSpecs = []struct {
	kind        engine.FieldKind
	name        string
	labelKey    string
	placeholder string
	maxLength   int
}{
	{engine.FieldDay, config.QueryDay, config.TKeyLblDay, config.PlaceholderDay, config.MaxLenDay},
	{engine.FieldMonth, config.QueryMonth, config.TKeyLblMonth, config.PlaceholderMonth, config.MaxLenMonth},
	{engine.FieldYear, config.QueryYear, config.TKeyLblYear, config.PlaceholderYear, config.MaxLenYear},
}

func (s *Server) handleFormPage(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, engine.NewFormState())
}

func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxFormBodySize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, config.HTTPMsgBadForm, http.StatusBadRequest)
		return
	}

	today := calendar.Today(s.Clock)
	state := priorState(r.PostForm)
	for _, field := range fieldSpecs {
		state = state.WithInput(field.kind, r.PostForm.Get(field.name), today)
	}
	state = state.Submit(today)

	if state.Date == engine.DateValid && allValid(state) {
		s.Metrics.IncrementCalculations(config.FrontendHTML)
	} else {
		s.recordFailures(config.FrontendHTML, state)
	}

	slog.Debug(config.MsgSubmit,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyOutcome, state.Date.String(),
		config.LogKeyRequestID, RequestIDFrom(r.Context()),
	)
	s.renderForm(w, r, state)
}

// priorState restores the result shown before this submission.
// Missing or tampered values (non-numeric, negative) are treated as no result.
func priorState(form url.Values) engine.FormState {
	state := engine.NewFormState()
	var values [3]int
	for i, key := range []string{config.FormPrevYears, config.FormPrevMonths, config.FormPrevDays} {
		v, err := strconv.Atoi(form.Get(key))
		if err != nil || v < 0 {
			return state
		}
		values[i] = v
	}
	state.Result = engine.Difference{Years: values[0], Months: values[1], Days: values[2]}
	state.HasResult = true
	return state
}

func allValid(state engine.FormState) bool {
	for _, kind := range engine.Fields {
		if state.Outcome(kind) != engine.FieldValid {
			return false
		}
	}
	return true
}

func (s *Server) recordFailures(frontend string, state engine.FormState) {
	for _, kind := range engine.Fields {
		if o := state.Outcome(kind); o != engine.FieldValid {
			s.Metrics.IncrementValidationFailure(frontend, kind.String(), o.String())
		}
	}
	if state.Date != engine.DateValid {
		s.Metrics.IncrementValidationFailure(frontend, config.APIKeyDate, state.Date.String())
	}
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, state engine.FormState) {
	tr := s.translator(r)
	view := buildPage(tr, state, s.Settings.ZeroPlaceholder)
	view.Languages = s.Catalog.Languages()

	w.Header().Set(config.HeaderContentType, config.MimeTextHTML)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	if err := formTemplate.Execute(w, view); err != nil {
		slog.Error(config.ErrTemplateRender,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
			config.LogKeyRequestID, RequestIDFrom(r.Context()),
		)
	}
}

// buildPage maps the form state to display strings.
// The whole-date message is shown under the day field.
func buildPage(tr *locale.Translator, state engine.FormState, zeroPlaceholder bool) pageView {
	view := pageView{
		Lang:          tr.Language(),
		Title:         tr.Msg(config.TKeyWinTitle),
		Submit:        tr.Msg(config.TKeyBtnSubmit),
		LanguageLabel: tr.Msg(config.TKeyLblLanguage),
		Footer:        fmt.Sprintf(tr.Msg(config.TKeyLblFooter), config.Version),
	}

	for _, field := range fieldSpecs {
		f := fieldView{
			Name:        field.name,
			Label:       tr.Msg(field.labelKey),
			Value:       state.Input.Get(field.kind),
			Placeholder: field.placeholder,
			MaxLength:   field.maxLength,
			Invalid:     state.FieldInvalid(field.kind),
		}
		if key := state.FieldMessageKey(field.kind); key != "" {
			f.Error = tr.Msg(key)
		} else if key := state.DateMessageKey(); key != "" && field.kind == engine.FieldDay {
			f.Error = tr.Msg(key)
		}
		view.Fields = append(view.Fields, f)
	}

	if state.HasResult {
		view.Previous = &previousView{
			Years:  state.Result.Years,
			Months: state.Result.Months,
			Days:   state.Result.Days,
		}
	}

	components := []struct {
		value int
		key   string
	}{
		{state.Result.Years, config.TKeyLblYears},
		{state.Result.Months, config.TKeyLblMonths},
		{state.Result.Days, config.TKeyLblDays},
	}
	for _, c := range components {
		view.Results = append(view.Results, resultView{
			Value: engine.FormatComponent(c.value, state.HasResult, zeroPlaceholder),
			Unit:  tr.Plural(c.key, engine.PluralCount(c.value, state.HasResult, zeroPlaceholder)),
		})
	}
	return view
}
