package ui

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// OpenContactsDialog asks for a vCard file and shows the age of every contact in it.
func (app *GoAgeApp) OpenContactsDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		_ = r.Close()

		if err := app.LoadContacts(path); err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		app.ShowContactsWindow()
	}, app.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// LoadContacts reads source (a path or an http(s) URL) into app.Contacts.
func (app *GoAgeApp) LoadContacts(source string) error {
	reader := &engine.ContactReader{Clock: app.Clock, Fetcher: app.Fetcher}
	contacts, err := reader.Read(app.Ctx, source, "", "")
	if err != nil {
		slog.Error(config.ErrVCardOpen,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err,
		)
		return err
	}

	app.ContactsMut.Lock()
	app.Contacts = contacts
	app.ContactsMut.Unlock()
	return nil
}

// ShowContactsWindow displays a window with all contacts and their exact age.
// It implements a singleton pattern: if the window is already open, it requests focus.
// It uses native Fyne table headers for sorting interaction.
func (app *GoAgeApp) ShowContactsWindow() {
	if app.contactsWindow != nil {
		app.contactsWindow.RequestFocus()
		return
	}

	app.contactsWindow = app.App.NewWindow(app.GetMsg(config.TKeyWinContacts))
	app.contactsWindow.Resize(fyne.NewSize(config.ContactsWinWidth, config.ContactsWinHeight))

	// Create a local copy of contacts for sorting/display to avoid race conditions
	app.ContactsMut.RLock()
	displayContacts := make([]engine.ContactAge, len(app.Contacts))
	copy(displayContacts, app.Contacts)
	app.ContactsMut.RUnlock()

	slog.Info(config.MsgOpenContacts,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(displayContacts))

	// Internal Sorting State. Oldest first by default.
	currentSortCol := config.ColIDDate
	sortAsc := true

	var refreshTable func()

	performSort := func() {
		sortContacts(displayContacts, currentSortCol, sortAsc)
		slog.Debug(config.MsgContactsSort,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
	}
	performSort()

	table := widget.NewTable(
		func() (int, int) {
			return len(displayContacts), config.ColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(displayContacts) {
				return
			}
			label.SetText(app.contactCell(displayContacts[id.Row], id.Col))
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("Header", func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		text := app.GetMsg(columnTitleKey(id.Col))
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			refreshTable()
		}
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDAge, config.ColWidthAge)

	refreshTable = func() {
		performSort()
		table.Refresh()
	}

	app.contactsWindow.SetContent(container.NewBorder(nil, nil, nil, nil, table))
	app.contactsWindow.SetOnClosed(func() {
		app.contactsWindow = nil
	})
	app.contactsWindow.Show()
}

func columnTitleKey(col int) string {
	switch col {
	case config.ColIDName:
		return config.TKeyColName
	case config.ColIDDate:
		return config.TKeyColDate
	default:
		return config.TKeyColAge
	}
}

// contactCell renders one table cell.
func (app *GoAgeApp) contactCell(c engine.ContactAge, col int) string {
	switch col {
	case config.ColIDName:
		return c.Name
	case config.ColIDDate:
		return c.DateOfBirth.String()
	default:
		return app.FormatAge(c.Age)
	}
}

// FormatAge renders a difference as "24 years, 2 months, 5 days".
func (app *GoAgeApp) FormatAge(d engine.Difference) string {
	return fmt.Sprintf(config.FormatAgeCell,
		d.Years, app.GetPlural(config.TKeyLblYears, d.Years),
		d.Months, app.GetPlural(config.TKeyLblMonths, d.Months),
		d.Days, app.GetPlural(config.TKeyLblDays, d.Days),
	)
}

// sortContacts orders contacts by column. The date and age columns are the
// same order seen from opposite ends: the oldest contact has the largest age.
func sortContacts(contacts []engine.ContactAge, col int, asc bool) {
	less := func(a, b engine.ContactAge) bool {
		switch col {
		case config.ColIDName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case config.ColIDAge:
			return a.DateOfBirth.After(b.DateOfBirth)
		default:
			if c := a.DateOfBirth.Compare(b.DateOfBirth); c != 0 {
				return c < 0
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		if asc {
			return less(contacts[i], contacts[j])
		}
		return less(contacts[j], contacts[i])
	})
}
