// BakeCalc — Bakery Production Cost Calculator
//
// A cross-platform desktop application for costing small-scale bakery
// production: pick ingredients, log oven gas usage, add extra line items,
// and get a total cost and suggested sale price. Named recipes are kept
// in a bounded history under ~/.bakecalc/.
//
// Build:
//   go build -o bakecalc ./cmd/bakecalc
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o bakecalc.exe ./cmd/bakecalc
//   GOOS=darwin  GOARCH=amd64 go build -o bakecalc-darwin ./cmd/bakecalc

package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"github.com/jfaundez/bakecalc/internal/project"
	"github.com/jfaundez/bakecalc/internal/session"
	"github.com/jfaundez/bakecalc/internal/ui"
)

func main() {
	application := app.NewWithID("com.jfaundez.bakecalc")
	window := application.NewWindow("BakeCalc — Bakery Cost Calculator")

	store := project.NewStore(project.DefaultConfigDir())
	sess, loadErr := session.New(store, nil)
	if loadErr != nil {
		fmt.Fprintf(os.Stderr, "bakecalc: some saved data could not be loaded: %v\n", loadErr)
	}

	appUI := ui.NewApp(window, sess)
	sess.SetNotifier(appUI)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1100, 720))
	window.CenterOnScreen()

	if loadErr != nil {
		dialog.ShowInformation("Saved data unavailable",
			"Some saved data could not be loaded; starting from defaults.", window)
	}

	window.Show()
	application.Run()
}
