package cli

import (
	"context"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/ui"
)

// openDesktop initializes the Fyne application and blocks in the UI loop.
func openDesktop(ctx context.Context, settings config.Settings) error {
	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	gui := ui.NewGoAgeApp(a, ctx, settings, engine.NewHTTPFetcher())
	gui.Run()
	return nil
}
