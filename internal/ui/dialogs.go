package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/jfaundez/bakecalc/internal/export"
	"github.com/jfaundez/bakecalc/internal/importer"
	"github.com/jfaundez/bakecalc/internal/model"
	"github.com/jfaundez/bakecalc/internal/project"
)

// ─── Ingredient dialogs ────────────────────────────────────

func (a *App) showEditIngredientDialog(def model.IngredientDefinition, custom bool) {
	priceEntry := widget.NewEntry()
	priceEntry.SetText(strconv.FormatFloat(def.UnitPrice, 'f', -1, 64))
	refEntry := widget.NewEntry()
	refEntry.SetText(strconv.FormatFloat(def.ReferenceQty, 'f', -1, 64))
	unitEntry := widget.NewEntry()
	unitEntry.SetText(def.Unit)

	form := dialog.NewForm(fmt.Sprintf("Edit %s", def.Name), "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Price", priceEntry),
			widget.NewFormItem("Reference quantity", refEntry),
			widget.NewFormItem("Unit", unitEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			price, _ := strconv.ParseFloat(priceEntry.Text, 64)
			refQty, _ := strconv.ParseFloat(refEntry.Text, 64)

			var err error
			if custom {
				err = a.session.UpdateCustomIngredient(def.ID, price, refQty, unitEntry.Text)
			} else {
				err = a.session.UpsertBuiltIn(def.ID, price, refQty, unitEntry.Text)
			}
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.refreshIngredientsList()
			a.refreshSummary()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 280))
	form.Show()
}

func (a *App) showAddCustomDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("e.g. Chocolate")
	priceEntry := widget.NewEntry()
	priceEntry.SetPlaceHolder("e.g. 5000")
	refEntry := widget.NewEntry()
	refEntry.SetPlaceHolder("e.g. 1000")
	unitEntry := widget.NewEntry()
	unitEntry.SetPlaceHolder("g, ml, unit")

	form := dialog.NewForm("Add Custom Ingredient", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Price", priceEntry),
			widget.NewFormItem("Reference quantity", refEntry),
			widget.NewFormItem("Unit", unitEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			price, _ := strconv.ParseFloat(priceEntry.Text, 64)
			refQty, _ := strconv.ParseFloat(refEntry.Text, 64)

			if _, err := a.session.AddCustomIngredient(nameEntry.Text, price, refQty, unitEntry.Text); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.refreshIngredientsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 320))
	form.Show()
}

// ─── Fuel config dialog ────────────────────────────────────

func (a *App) showFuelConfigDialog() {
	cfg := a.session.FuelConfig

	priceEntry := widget.NewEntry()
	priceEntry.SetText(strconv.FormatFloat(cfg.CylinderPrice, 'f', -1, 64))
	massEntry := widget.NewEntry()
	massEntry.SetText(strconv.FormatFloat(cfg.CylinderMassKg, 'f', -1, 64))
	factorEntry := widget.NewEntry()
	factorEntry.SetText(strconv.FormatFloat(cfg.BurnRateFactor, 'f', -1, 64))

	form := dialog.NewForm("Configure Gas", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Cylinder price", priceEntry),
			widget.NewFormItem("Cylinder size (kg)", massEntry),
			widget.NewFormItem("Burn rate (kg/h at 180 °C)", factorEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			price, _ := strconv.ParseFloat(priceEntry.Text, 64)
			mass, _ := strconv.ParseFloat(massEntry.Text, 64)
			factor, _ := strconv.ParseFloat(factorEntry.Text, 64)

			err := a.session.SetFuelConfig(model.FuelConfig{
				CylinderPrice:  price,
				CylinderMassKg: mass,
				BurnRateFactor: factor,
			})
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.refreshFuelList()
			a.refreshSummary()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 280))
	form.Show()
}

// ─── Extra item dialog ─────────────────────────────────────

// showExtraItemDialog adds a new item when existing is nil, or edits the
// given item in place.
func (a *App) showExtraItemDialog(existing *model.ExtraLineItem) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("e.g. Packaging")
	priceEntry := widget.NewEntry()
	priceEntry.SetPlaceHolder("Unit price")
	qtyEntry := widget.NewEntry()
	qtyEntry.SetText("1")

	title := "Add Extra Item"
	confirm := "Add"
	if existing != nil {
		title = "Edit Extra Item"
		confirm = "Save"
		nameEntry.SetText(existing.Name)
		priceEntry.SetText(strconv.FormatFloat(existing.UnitPrice, 'f', -1, 64))
		qtyEntry.SetText(strconv.Itoa(existing.Quantity))
	}

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Unit price", priceEntry),
			widget.NewFormItem("Quantity", qtyEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			price, _ := strconv.ParseFloat(priceEntry.Text, 64)
			qty, _ := strconv.Atoi(qtyEntry.Text)

			var err error
			if existing != nil {
				err = a.session.EditExtraItem(existing.ID, nameEntry.Text, price, qty)
			} else {
				_, err = a.session.AddExtraItem(nameEntry.Text, price, qty)
			}
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.refreshExtrasList()
			a.refreshSummary()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 280))
	form.Show()
}

// ─── Configuration dialog ──────────────────────────────────

// showConfigDialog edits all built-in prices and the gas setup in one
// place.
func (a *App) showConfigDialog() {
	type entryRow struct {
		id    string
		price *widget.Entry
		ref   *widget.Entry
		unit  *widget.Entry
	}

	rows := make([]entryRow, 0, len(a.session.Catalog.BuiltIns))
	grid := container.NewVBox()
	for _, def := range a.session.Catalog.BuiltIns {
		priceEntry := widget.NewEntry()
		priceEntry.SetText(strconv.FormatFloat(def.UnitPrice, 'f', -1, 64))
		refEntry := widget.NewEntry()
		refEntry.SetText(strconv.FormatFloat(def.ReferenceQty, 'f', -1, 64))
		unitEntry := widget.NewEntry()
		unitEntry.SetText(def.Unit)

		rows = append(rows, entryRow{id: def.ID, price: priceEntry, ref: refEntry, unit: unitEntry})
		grid.Add(widget.NewLabelWithStyle(def.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		grid.Add(container.NewGridWithColumns(3, priceEntry, refEntry, unitEntry))
	}

	content := container.NewVScroll(grid)
	content.SetMinSize(fyne.NewSize(420, 400))

	dialog.ShowCustomConfirm("Configuration", "Save", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		for _, row := range rows {
			price, perr := strconv.ParseFloat(row.price.Text, 64)
			refQty, rerr := strconv.ParseFloat(row.ref.Text, 64)
			if perr != nil || rerr != nil || strings.TrimSpace(row.unit.Text) == "" {
				continue
			}
			if err := a.session.UpsertBuiltIn(row.id, price, refQty, row.unit.Text); err != nil {
				dialog.ShowError(err, a.window)
			}
		}
		a.refreshIngredientsList()
		a.refreshSummary()
	}, a.window)
}

// ─── File import/export flows ──────────────────────────────

func (a *App) exportCostSheet() {
	sum := a.session.Summary()
	if len(sum.Items) == 0 {
		dialog.ShowInformation("Nothing to export", "Select ingredients first.", a.window)
		return
	}

	name := a.session.RecipeName
	if name == "" {
		name = fmt.Sprintf("Recipe - %s", time.Now().Format(model.DateLayout))
	}
	rec := model.NewRecipe(name, sum.GrandTotal, a.session.Selection, a.session.FuelLedger, a.session.Extras)

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.ExportCostSheet(path, rec, sum); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName(strings.ReplaceAll(name, " ", "-") + ".pdf")
	d.Show()
}

func (a *App) exportRecipeFile(rec model.Recipe) {
	full, err := a.session.ExportRecipe(rec.ID)
	if err != nil {
		dialog.ShowInformation("Recipe not found", "That recipe is no longer in the history.", a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := project.WriteRecipeFile(path, full); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName(project.RecipeFileName(full.Name))
	d.Show()
}

func (a *App) importRecipeFile() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		rec, err := project.ReadRecipeFile(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		data, err := model.EncodeRecipe(rec)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		imported, err := a.session.ImportRecipe(data)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refreshHistory()
		dialog.ShowInformation("Recipe imported", fmt.Sprintf("%q added to history.", imported.Name), a.window)
	}, a.window)
}

func (a *App) exportConfiguration() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		cfg := model.Config{
			BuiltIns:     a.session.Catalog.BuiltIns,
			Fuel:         a.session.FuelConfig,
			ProfitMargin: a.session.ProfitMargin,
			LastUpdate:   time.Now().Format("2006-01-02"),
		}
		if err := project.ExportConfigFile(path, cfg, a.session.Catalog.Customs); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName(project.ConfigExportFileName(time.Now()))
	d.Show()
}

func (a *App) importConfiguration() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		doc, err := project.ImportConfigFile(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		if err := a.session.ApplyImportedConfig(doc.Config, doc.CustomIngredients); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refreshAll()
		dialog.ShowInformation("Configuration imported", "Ingredient prices and gas setup updated.", a.window)
	}, a.window)
}

func (a *App) importIngredients(excel bool) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		var result importer.ImportResult
		if excel {
			result = importer.ImportExcel(path)
		} else {
			result = importer.ImportCSV(path)
		}

		added := 0
		for _, def := range result.Ingredients {
			if _, err := a.session.AddCustomIngredient(def.Name, def.UnitPrice, def.ReferenceQty, def.Unit); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", def.Name, err))
				continue
			}
			added++
		}

		if len(result.Errors) > 0 && added == 0 {
			dialog.ShowError(fmt.Errorf("%s", strings.Join(result.Errors, "\n")), a.window)
			return
		}

		msg := fmt.Sprintf("Imported %d ingredient(s).", added)
		if len(result.Warnings) > 0 {
			msg += "\n\nWarnings:\n" + strings.Join(result.Warnings, "\n")
		}
		if len(result.Errors) > 0 {
			msg += "\n\nSkipped rows:\n" + strings.Join(result.Errors, "\n")
		}
		a.refreshIngredientsList()
		dialog.ShowInformation("Import Complete", msg, a.window)
	}, a.window)
}
