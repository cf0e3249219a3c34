package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// styles holds the terminal styles. Plain styles render text unchanged.
type styles struct {
	value  lipgloss.Style // result numerals
	muted  lipgloss.Style // labels, table borders
	header lipgloss.Style // table header row
	err    lipgloss.Style // validation messages
}

func newStyles(colored bool) styles {
	if !colored {
		plain := lipgloss.NewStyle()
		return styles{value: plain, muted: plain, header: plain, err: plain}
	}
	return styles{
		value:  lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorAccent)).Bold(true),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorMuted)),
		header: lipgloss.NewStyle().Bold(true),
		err:    lipgloss.NewStyle().Italic(true),
	}
}

// printDifference writes one "N unit" line per component.
func (rt *cliRuntime) printDifference(w io.Writer, d engine.Difference) error {
	zero := rt.settings.ZeroPlaceholder
	components := []struct {
		value int
		key   string
	}{
		{d.Years, config.TKeyLblYears},
		{d.Months, config.TKeyLblMonths},
		{d.Days, config.TKeyLblDays},
	}
	for _, c := range components {
		value := rt.styles.value.Render(engine.FormatComponent(c.value, true, zero))
		unit := rt.tr.Plural(c.key, engine.PluralCount(c.value, true, zero))
		if _, err := fmt.Fprintf(w, config.FormatCLIResult, value, unit); err != nil {
			return err
		}
	}
	return nil
}

// reportValidation prints the localized messages of a *engine.ValidationError
// and returns errReported. Other errors are returned unchanged.
func (rt *cliRuntime) reportValidation(err error) error {
	var verr *engine.ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	labels := map[engine.FieldKind]string{
		engine.FieldDay:   config.TKeyLblDay,
		engine.FieldMonth: config.TKeyLblMonth,
		engine.FieldYear:  config.TKeyLblYear,
	}
	for _, kind := range engine.Fields {
		key := verr.Field(kind).MessageKey(kind)
		if key == "" {
			continue
		}
		_, _ = fmt.Fprintf(rt.ErrOut, config.FormatCLIField,
			rt.styles.muted.Render(rt.tr.Msg(labels[kind])),
			rt.styles.err.Render(rt.tr.Msg(key)))
	}
	if key := verr.Date.MessageKey(); key != "" {
		_, _ = fmt.Fprintln(rt.ErrOut, rt.styles.err.Render(rt.tr.Msg(key)))
	}
	return errReported
}

// formatAge renders a difference as "24 years, 2 months, 5 days".
func (rt *cliRuntime) formatAge(d engine.Difference) string {
	return fmt.Sprintf(config.FormatAgeCell,
		d.Years, rt.tr.Plural(config.TKeyLblYears, d.Years),
		d.Months, rt.tr.Plural(config.TKeyLblMonths, d.Months),
		d.Days, rt.tr.Plural(config.TKeyLblDays, d.Days),
	)
}

// contactsTable renders contacts with a header row and a rule between rows.
func (rt *cliRuntime) contactsTable(contacts []engine.ContactAge) string {
	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{c.Name, c.DateOfBirth.String(), rt.formatAge(c.Age)})
	}

	tbl := table.New().
		Border(lipgloss.Border{
			Top:    "─",
			Bottom: "─",
			Middle: "─",
		}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(false).
		BorderStyle(rt.styles.muted).
		Headers(
			rt.tr.Msg(config.TKeyColName),
			rt.tr.Msg(config.TKeyColDate),
			rt.tr.Msg(config.TKeyColAge),
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle()
			if row == table.HeaderRow {
				style = rt.styles.header
			}
			if col < config.ColCount-1 {
				style = style.PaddingRight(config.TableCellGap)
			}
			return style
		}).
		Rows(rows...)

	return tbl.Render()
}
