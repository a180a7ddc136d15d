// Package ui implements the Fyne front-end: the tabbed main window, the
// edit dialogs, and the confirmation prompts. All state mutation goes
// through the session; the UI only renders and forwards validated input.
package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/jfaundez/bakecalc/internal/model"
	"github.com/jfaundez/bakecalc/internal/session"
)

// App holds the window, the session, and the container references that
// refresh dynamically.
type App struct {
	window  fyne.Window
	session *session.Session
	tabs    *container.AppTabs

	ingredientsContainer *fyne.Container
	fuelContainer        *fyne.Container
	extrasContainer      *fyne.Container
	summaryContainer     *fyne.Container
	historyContainer     *fyne.Container

	recipeNameEntry   *widget.Entry
	profitMarginEntry *widget.Entry

	// qtyEntries keeps one quantity entry per catalog id so restore can
	// write loaded quantities back into the form.
	qtyEntries map[string]*widget.Entry
}

func NewApp(window fyne.Window, sess *session.Session) *App {
	return &App{
		window:     window,
		session:    sess,
		qtyEntries: map[string]*widget.Entry{},
	}
}

// PersistFailed implements session.Notifier: storage failures surface as a
// transient error dialog while the in-memory state stays authoritative.
func (a *App) PersistFailed(err error) {
	dialog.ShowError(fmt.Errorf("failed to save data (changes kept in memory): %w", err), a.window)
}

// SetupMenus creates the native menu bar.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Recipe", func() {
			a.confirmNewRecipe()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Recipe...", func() {
			a.importRecipeFile()
		}),
		fyne.NewMenuItem("Import Ingredients from CSV...", func() {
			a.importIngredients(false)
		}),
		fyne.NewMenuItem("Import Ingredients from Excel...", func() {
			a.importIngredients(true)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Cost Sheet (PDF)...", func() {
			a.exportCostSheet()
		}),
		fyne.NewMenuItem("Export Configuration...", func() {
			a.exportConfiguration()
		}),
		fyne.NewMenuItem("Import Configuration...", func() {
			a.importConfiguration()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Configuration...", func() {
			a.showConfigDialog()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation(
				"About BakeCalc",
				"BakeCalc — Bakery Production Cost Calculator\n\n"+
					"Select ingredients, log oven usage, and get a total\n"+
					"production cost with a suggested sale price.\n\n"+
					"Version 1.0.0",
				a.window,
			)
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, toolsMenu, helpMenu))
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	ingredientsTab := container.NewTabItem("Ingredients", a.buildIngredientsPanel())
	fuelTab := container.NewTabItem("Oven", a.buildFuelPanel())
	extrasTab := container.NewTabItem("Extras", a.buildExtrasPanel())
	summaryTab := container.NewTabItem("Summary", a.buildSummaryPanel())
	historyTab := container.NewTabItem("History", a.buildHistoryPanel())

	a.tabs = container.NewAppTabs(ingredientsTab, fuelTab, extrasTab, summaryTab, historyTab)
	a.tabs.SetTabLocation(container.TabLocationTop)
	return a.tabs
}

func (a *App) refreshAll() {
	a.refreshIngredientsList()
	a.refreshFuelList()
	a.refreshExtrasList()
	a.refreshSummary()
	a.refreshHistory()
}

// ─── Ingredients Panel ─────────────────────────────────────

func (a *App) buildIngredientsPanel() fyne.CanvasObject {
	a.ingredientsContainer = container.NewVBox()
	a.refreshIngredientsList()

	addBtn := widget.NewButtonWithIcon("Add Ingredient", theme.ContentAddIcon(), func() {
		a.showAddCustomDialog()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Ingredients", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.ingredientsContainer),
	)
}

func (a *App) refreshIngredientsList() {
	a.ingredientsContainer.RemoveAll()
	a.qtyEntries = map[string]*widget.Entry{}

	for _, def := range a.session.Catalog.BuiltIns {
		a.ingredientsContainer.Add(a.buildIngredientRow(def, false))
	}
	a.ingredientsContainer.Add(widget.NewSeparator())
	if len(a.session.Catalog.Customs) == 0 {
		a.ingredientsContainer.Add(widget.NewLabel("No custom ingredients yet."))
	}
	for _, def := range a.session.Catalog.Customs {
		a.ingredientsContainer.Add(a.buildIngredientRow(def, true))
	}
}

func (a *App) buildIngredientRow(def model.IngredientDefinition, custom bool) fyne.CanvasObject {
	id := def.ID

	qtyEntry := widget.NewEntry()
	qtyEntry.SetPlaceHolder(fmt.Sprintf("Quantity (%s)", def.Unit))
	a.qtyEntries[id] = qtyEntry

	qty, selected := a.session.Selection[id]
	if selected {
		qtyEntry.SetText(strconv.FormatFloat(qty, 'f', -1, 64))
	} else {
		qtyEntry.Disable()
	}

	qtyEntry.OnChanged = func(text string) {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			v = 0
		}
		a.session.SetIngredientQuantity(id, v)
		a.refreshSummary()
	}

	check := widget.NewCheck(def.Name, func(checked bool) {
		if checked {
			qtyEntry.Enable()
			v, err := strconv.ParseFloat(qtyEntry.Text, 64)
			if err != nil {
				v = 0
			}
			a.session.SetIngredientQuantity(id, v)
		} else {
			qtyEntry.SetText("")
			qtyEntry.Disable()
			a.session.SetIngredientQuantity(id, 0)
		}
		a.refreshSummary()
	})
	check.Checked = selected

	editBtn := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
		a.showEditIngredientDialog(def, custom)
	})

	row := container.NewHBox(check, widget.NewLabel(def.PriceDisplay()), layout.NewSpacer())
	if custom {
		row.Add(widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
			a.confirmRemoveCustom(def)
		}))
	}
	row.Add(editBtn)

	return container.NewVBox(row, qtyEntry)
}

func (a *App) confirmRemoveCustom(def model.IngredientDefinition) {
	tok := a.session.RequestConfirmation(func() {
		a.session.RemoveCustomIngredient(def.ID)
		a.refreshIngredientsList()
		a.refreshSummary()
	})
	dialog.ShowConfirm("Delete ingredient?",
		fmt.Sprintf("%q will be removed from the catalog.", def.Name),
		func(ok bool) {
			if ok {
				a.session.Confirm(tok)
			} else {
				a.session.Cancel(tok)
			}
		}, a.window)
}

// ─── Oven (Fuel) Panel ─────────────────────────────────────

func (a *App) buildFuelPanel() fyne.CanvasObject {
	hoursEntry := widget.NewEntry()
	hoursEntry.SetPlaceHolder("Hours")
	minutesEntry := widget.NewEntry()
	minutesEntry.SetPlaceHolder("Minutes")
	tempEntry := widget.NewEntry()
	tempEntry.SetPlaceHolder("Temperature °C")

	addBtn := widget.NewButtonWithIcon("Add Usage", theme.ContentAddIcon(), func() {
		hours, _ := strconv.ParseFloat(hoursEntry.Text, 64)
		minutes, _ := strconv.ParseFloat(minutesEntry.Text, 64)
		temp, _ := strconv.ParseFloat(tempEntry.Text, 64)

		if _, err := a.session.AddFuelUsage(hours, minutes, temp); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		hoursEntry.SetText("")
		minutesEntry.SetText("")
		tempEntry.SetText("")
		a.refreshFuelList()
		a.refreshSummary()
	})

	configBtn := widget.NewButtonWithIcon("Configure Gas", theme.SettingsIcon(), func() {
		a.showFuelConfigDialog()
	})

	form := container.NewVBox(
		container.NewGridWithColumns(3, hoursEntry, minutesEntry, tempEntry),
		container.NewHBox(addBtn, layout.NewSpacer(), configBtn),
		widget.NewSeparator(),
	)

	a.fuelContainer = container.NewVBox()
	a.refreshFuelList()

	return container.NewBorder(form, nil, nil, nil, container.NewVScroll(a.fuelContainer))
}

func (a *App) refreshFuelList() {
	a.fuelContainer.RemoveAll()

	if len(a.session.FuelLedger) == 0 {
		a.fuelContainer.Add(widget.NewLabel("No oven usage logged yet."))
		return
	}

	for _, usage := range a.session.FuelLedger {
		u := usage
		info := fmt.Sprintf("%gh %gmin at %g°C (%.2f kg)", u.Hours, u.Minutes, u.TemperatureC, u.ConsumedKg)
		row := container.NewHBox(
			widget.NewLabel(info),
			layout.NewSpacer(),
			widget.NewLabel(model.FormatCLP(u.Cost)),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.session.RemoveFuelUsage(u.ID)
				a.refreshFuelList()
				a.refreshSummary()
			}),
		)
		a.fuelContainer.Add(row)
	}

	a.fuelContainer.Add(widget.NewSeparator())
	total := fmt.Sprintf("Total gas: %s (%.2f kg)", model.FormatCLP(a.session.FuelLedger.TotalCost()), a.session.FuelLedger.TotalMass())
	a.fuelContainer.Add(widget.NewLabelWithStyle(total, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
}

// ─── Extras Panel ──────────────────────────────────────────

func (a *App) buildExtrasPanel() fyne.CanvasObject {
	a.extrasContainer = container.NewVBox()
	a.refreshExtrasList()

	addBtn := widget.NewButtonWithIcon("Add Item", theme.ContentAddIcon(), func() {
		a.showExtraItemDialog(nil)
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Extra Items", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.extrasContainer),
	)
}

func (a *App) refreshExtrasList() {
	a.extrasContainer.RemoveAll()

	if len(a.session.Extras) == 0 {
		a.extrasContainer.Add(widget.NewLabel("No extra items yet."))
		return
	}

	for _, item := range sortedExtras(a.session.Extras) {
		it := item
		info := fmt.Sprintf("%s — %d x %s", it.Name, it.Quantity, model.FormatCLP(it.UnitPrice))
		row := container.NewHBox(
			widget.NewLabel(info),
			layout.NewSpacer(),
			widget.NewLabel(model.FormatCLP(it.TotalCost)),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showExtraItemDialog(&it)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.session.RemoveExtraItem(it.ID)
				a.refreshExtrasList()
				a.refreshSummary()
			}),
		)
		a.extrasContainer.Add(row)
	}

	a.extrasContainer.Add(widget.NewSeparator())
	total := fmt.Sprintf("Total extras: %s", model.FormatCLP(a.session.Extras.TotalCost()))
	a.extrasContainer.Add(widget.NewLabelWithStyle(total, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
}
