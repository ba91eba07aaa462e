package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/dukerupert/questboard/internal/model"
)

const defaultSheet = "Sheet1"

// Save writes every catalog sheet, replacing their contents. Other sheets in
// the workbook are left alone. A missing workbook is created.
func (w *Workbook) Save(ctx context.Context, cat *model.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cat == nil {
		cat = model.NewCatalog()
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	var f *excelize.File
	created := false
	if _, err := os.Stat(w.Path); errors.Is(err, fs.ErrNotExist) {
		f = excelize.NewFile()
		created = true
	} else {
		f, err = excelize.OpenFile(w.Path)
		if err != nil {
			return fmt.Errorf("open workbook: %w", err)
		}
	}
	defer f.Close()

	sheets := map[string][][]any{
		SheetMorningTasks:   w.taskRows(cat, model.ModeMorning),
		SheetAfternoonTasks: w.taskRows(cat, model.ModeAfternoon),
		SheetWeekendTasks:   w.weekendRows(cat),
		SheetMenu:           menuRows(cat),
		SheetRewards:        w.rewardRows(cat),
	}
	for _, name := range []string{SheetMorningTasks, SheetAfternoonTasks, SheetWeekendTasks, SheetMenu, SheetRewards} {
		if err := writeSheet(f, name, sheets[name]); err != nil {
			return err
		}
	}
	if created {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("delete default sheet: %w", err)
		}
		if idx, err := f.GetSheetIndex(SheetMorningTasks); err == nil && idx >= 0 {
			f.SetActiveSheet(idx)
		}
	}

	if err := f.SaveAs(w.Path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// writeSheet empties sheet (creating it if needed) and writes rows from A1.
func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("find sheet %s: %w", sheet, err)
	}
	if idx == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
	} else {
		existing, err := f.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		for i := len(existing); i >= 1; i-- {
			if err := f.RemoveRow(sheet, i); err != nil {
				return fmt.Errorf("clear sheet %s: %w", sheet, err)
			}
		}
	}

	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("write sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func (w *Workbook) taskRows(cat *model.Catalog, mode model.Mode) [][]any {
	header := make([]any, 0, len(w.Roster))
	longest := 0
	for _, name := range w.Roster {
		header = append(header, name)
		longest = max(longest, len(cat.TasksFor(mode, name)))
	}
	rows := [][]any{header}
	for i := range longest {
		row := make([]any, 0, len(w.Roster))
		for _, name := range w.Roster {
			row = append(row, at(cat.TasksFor(mode, name), i))
		}
		rows = append(rows, row)
	}
	return rows
}

// weekendRows writes three columns per participant: task, goal and the goal's
// credit value. A goal using the default award leaves its credit cell blank.
func (w *Workbook) weekendRows(cat *model.Catalog) [][]any {
	header := make([]any, 0, 3*len(w.Roster))
	longest := 0
	for _, name := range w.Roster {
		header = append(header, name, name+" Goal", name+" Goal Credits")
		longest = max(longest, len(cat.TasksFor(model.ModeWeekend, name)), len(cat.Goals[name]))
	}
	rows := [][]any{header}
	for i := range longest {
		row := make([]any, 0, 3*len(w.Roster))
		for _, name := range w.Roster {
			row = append(row, at(cat.TasksFor(model.ModeWeekend, name), i))
			goals := cat.Goals[name]
			switch {
			case i >= len(goals):
				row = append(row, "", "")
			case goals[i].Credits > 0:
				row = append(row, goals[i].Name, goals[i].Credits)
			default:
				row = append(row, goals[i].Name, "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func menuRows(cat *model.Catalog) [][]any {
	header := make([]any, 0, 2*len(menuHeaders))
	longest := 0
	for _, mh := range menuHeaders {
		header = append(header, mh.header, inventoryHeader)
		longest = max(longest, len(cat.Food[mh.cat]))
	}
	rows := [][]any{header}
	for i := range longest {
		row := make([]any, 0, 2*len(menuHeaders))
		for _, mh := range menuHeaders {
			items := cat.Food[mh.cat]
			if i >= len(items) {
				row = append(row, "", "")
				continue
			}
			stock := "no"
			if items[i].InStock {
				stock = "yes"
			}
			row = append(row, items[i].Name, stock)
		}
		rows = append(rows, row)
	}
	return rows
}

func (w *Workbook) rewardRows(cat *model.Catalog) [][]any {
	header := make([]any, 0, 2*len(w.Roster))
	longest := 0
	for _, name := range w.Roster {
		header = append(header, name, name+" Cost")
		longest = max(longest, len(cat.Rewards[name]))
	}
	rows := [][]any{header}
	for i := range longest {
		row := make([]any, 0, 2*len(w.Roster))
		for _, name := range w.Roster {
			rewards := cat.Rewards[name]
			if i >= len(rewards) {
				row = append(row, "", "")
				continue
			}
			row = append(row, rewards[i].Name, rewards[i].Cost)
		}
		rows = append(rows, row)
	}
	return rows
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}
