package ui

import (
	"fmt"
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/jfaundez/bakecalc/internal/model"
)

// sortedExtras returns the ledger items in the same name order the costing
// engine lists them.
func sortedExtras(extras model.ExtraLedger) []model.ExtraLineItem {
	items := make([]model.ExtraLineItem, 0, len(extras))
	for _, item := range extras {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
	return items
}

// ─── Summary Panel ─────────────────────────────────────────

func (a *App) buildSummaryPanel() fyne.CanvasObject {
	a.recipeNameEntry = widget.NewEntry()
	a.recipeNameEntry.SetPlaceHolder("Recipe name")
	a.recipeNameEntry.OnChanged = func(text string) {
		a.session.SetRecipeName(text)
	}

	a.profitMarginEntry = widget.NewEntry()
	a.profitMarginEntry.SetText(strconv.FormatFloat(a.session.ProfitMargin, 'f', -1, 64))
	a.profitMarginEntry.OnChanged = func(text string) {
		margin, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return
		}
		if err := a.session.SetProfitMargin(margin); err != nil {
			return
		}
		a.refreshSummary()
	}

	saveBtn := widget.NewButtonWithIcon("Save Recipe", theme.DocumentSaveIcon(), func() {
		rec, err := a.session.SaveRecipe(a.recipeNameEntry.Text)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refreshHistory()
		dialog.ShowInformation("Recipe saved", fmt.Sprintf("%q saved to history.", rec.Name), a.window)
	})

	newBtn := widget.NewButtonWithIcon("New Recipe", theme.ContentClearIcon(), func() {
		a.confirmNewRecipe()
	})

	pdfBtn := widget.NewButtonWithIcon("Cost Sheet PDF", theme.DocumentPrintIcon(), func() {
		a.exportCostSheet()
	})

	top := container.NewVBox(
		a.recipeNameEntry,
		container.NewHBox(
			widget.NewLabel("Profit margin:"),
			a.profitMarginEntry,
			layout.NewSpacer(),
			saveBtn, newBtn, pdfBtn,
		),
		widget.NewSeparator(),
	)

	a.summaryContainer = container.NewVBox()
	a.refreshSummary()

	return container.NewBorder(top, nil, nil, nil, container.NewVScroll(a.summaryContainer))
}

func (a *App) refreshSummary() {
	if a.summaryContainer == nil {
		return
	}
	a.summaryContainer.RemoveAll()

	sum := a.session.Summary()
	if len(sum.Items) == 0 {
		a.summaryContainer.Add(widget.NewLabel("Select ingredients to see the cost breakdown."))
		a.summaryContainer.Refresh()
		return
	}

	for _, item := range sum.Items {
		row := container.NewHBox(
			widget.NewLabel(item.Label),
			widget.NewLabel(item.QuantityDisplay),
			layout.NewSpacer(),
			widget.NewLabel(model.FormatCLP(item.Cost)),
		)
		a.summaryContainer.Add(row)
	}

	a.summaryContainer.Add(widget.NewSeparator())
	a.summaryContainer.Add(widget.NewLabelWithStyle(
		fmt.Sprintf("Total cost: %s", model.FormatCLP(sum.GrandTotal)),
		fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	a.summaryContainer.Add(widget.NewLabelWithStyle(
		fmt.Sprintf("Suggested sale price: %s", model.FormatCLP(sum.SuggestedPrice)),
		fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))

	// Distribution chart: one proportional bar per line item.
	a.summaryContainer.Add(widget.NewSeparator())
	a.summaryContainer.Add(widget.NewLabelWithStyle("Cost distribution", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	for i, item := range sum.Items {
		pct := sum.Percentage(i)
		bar := widget.NewProgressBar()
		bar.SetValue(pct / 100)
		a.summaryContainer.Add(container.NewBorder(nil, nil,
			widget.NewLabel(fmt.Sprintf("%s (%.1f%%)", item.Label, pct)),
			widget.NewLabel(model.FormatCLP(item.Cost)),
			bar,
		))
	}

	a.summaryContainer.Refresh()
}

func (a *App) confirmNewRecipe() {
	tok := a.session.RequestConfirmation(func() {
		a.session.ResetWorkingState()
		if a.recipeNameEntry != nil {
			a.recipeNameEntry.SetText("")
		}
		a.refreshAll()
	})
	dialog.ShowConfirm("Clear the form?",
		"The current recipe data will be cleared so you can start a new one.",
		func(ok bool) {
			if ok {
				a.session.Confirm(tok)
			} else {
				a.session.Cancel(tok)
			}
		}, a.window)
}

// ─── History Panel ─────────────────────────────────────────

func (a *App) buildHistoryPanel() fyne.CanvasObject {
	a.historyContainer = container.NewVBox()
	a.refreshHistory()

	importBtn := widget.NewButtonWithIcon("Import Recipe", theme.FolderOpenIcon(), func() {
		a.importRecipeFile()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Saved Recipes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			importBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.historyContainer),
	)
}

func (a *App) refreshHistory() {
	if a.historyContainer == nil {
		return
	}
	a.historyContainer.RemoveAll()

	if len(a.session.History) == 0 {
		a.historyContainer.Add(widget.NewLabel("No saved recipes yet."))
		a.historyContainer.Refresh()
		return
	}

	for _, rec := range a.session.History {
		r := rec
		row := container.NewHBox(
			widget.NewLabelWithStyle(r.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(r.Date),
			layout.NewSpacer(),
			widget.NewLabel(model.FormatCLP(r.TotalCost)),
			widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
				a.restoreRecipe(r)
			}),
			widget.NewButtonWithIcon("", theme.DownloadIcon(), func() {
				a.exportRecipeFile(r)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.confirmDeleteRecipe(r)
			}),
		)
		a.historyContainer.Add(row)
	}
	a.historyContainer.Refresh()
}

func (a *App) restoreRecipe(rec model.Recipe) {
	if err := a.session.RestoreRecipe(rec.ID); err != nil {
		dialog.ShowInformation("Recipe not found", "That recipe is no longer in the history.", a.window)
		return
	}
	if a.recipeNameEntry != nil {
		a.recipeNameEntry.SetText(a.session.RecipeName)
	}
	a.refreshAll()
}

func (a *App) confirmDeleteRecipe(rec model.Recipe) {
	tok := a.session.RequestConfirmation(func() {
		a.session.DeleteRecipe(rec.ID)
		a.refreshHistory()
	})
	dialog.ShowConfirm("Delete recipe?",
		fmt.Sprintf("%q will be removed from the history.", rec.Name),
		func(ok bool) {
			if ok {
				a.session.Confirm(tok)
			} else {
				a.session.Cancel(tok)
			}
		}, a.window)
}
