// Package catalog reads and writes the household workbook: task lists per
// mode, the breakfast and lunch menu, rewards and weekend goals. The workbook
// is edited by hand as well, so reading is forgiving and every row is
// normalized into the model types.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/dukerupert/questboard/internal/model"
)

const (
	SheetMorningTasks   = "morning_tasks"
	SheetAfternoonTasks = "afternoon_tasks"
	SheetWeekendTasks   = "weekend_tasks"
	SheetMenu           = "morning_options"
	SheetRewards        = "rewards"

	inventoryHeader = "Inventory"
)

var taskSheets = []struct {
	mode  model.Mode
	sheet string
}{
	{model.ModeMorning, SheetMorningTasks},
	{model.ModeAfternoon, SheetAfternoonTasks},
	{model.ModeWeekend, SheetWeekendTasks},
}

// menuHeaders are the column titles of each food category, in sheet order.
var menuHeaders = []struct {
	cat    model.FoodCategory
	header string
}{
	{model.FoodBreakfast, "Breakfast"},
	{model.FoodSpecialBreakfast, "Special Breakfast"},
	{model.FoodLunchMain, "Lunch Main"},
	{model.FoodLunchHealthy, "Lunch Sides Healthy"},
	{model.FoodLunchTreat, "Lunch Sides Unhealthy"},
	{model.FoodSnacks, "Snacks"},
}

// Workbook is a catalog stored in an .xlsx file with one column per participant.
type Workbook struct {
	Path   string
	Roster []string

	mu sync.Mutex
}

func NewWorkbook(path string, roster []string) *Workbook {
	return &Workbook{Path: path, Roster: append([]string(nil), roster...)}
}

// Load reads the workbook. A missing file or missing sheet reads as empty.
func (w *Workbook) Load(ctx context.Context) (*model.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := os.Stat(w.Path); errors.Is(err, fs.ErrNotExist) {
		return model.NewCatalog(), nil
	}
	f, err := excelize.OpenFile(w.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	cat := model.NewCatalog()
	for _, ts := range taskSheets {
		rows, err := readSheet(f, ts.sheet)
		if err != nil {
			return nil, err
		}
		cat.Tasks[ts.mode] = w.parseTasks(rows)
		if ts.mode == model.ModeWeekend {
			cat.Goals = w.parseGoals(rows)
		}
	}

	rows, err := readSheet(f, SheetMenu)
	if err != nil {
		return nil, err
	}
	cat.Food = parseMenu(rows)

	rows, err = readSheet(f, SheetRewards)
	if err != nil {
		return nil, err
	}
	cat.Rewards = w.parseRewards(rows)
	return cat, nil
}

func readSheet(f *excelize.File, sheet string) ([][]string, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

// cell returns the trimmed value at col, or "" past the end of a short row.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// column returns the values below the header in col, skipping blanks.
func column(rows [][]string, col int) []string {
	var out []string
	if col < 0 {
		return out
	}
	for _, row := range rows[1:] {
		if v := cell(row, col); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func findHeader(header []string, match func(string) bool) int {
	for i, h := range header {
		if match(strings.TrimSpace(h)) {
			return i
		}
	}
	return -1
}

// parseTasks reads one column per participant. The task column is the first
// header naming the participant that is not one of their goal columns.
func (w *Workbook) parseTasks(rows [][]string) map[string][]string {
	tasks := make(map[string][]string)
	if len(rows) == 0 {
		return tasks
	}
	for _, name := range w.Roster {
		col := findHeader(rows[0], func(h string) bool {
			return strings.Contains(h, name) && !strings.Contains(h, "Goal")
		})
		if col >= 0 {
			tasks[name] = column(rows, col)
		}
	}
	return tasks
}

// parseGoals reads "<Name> Goal" and the optional "<Name> Goal Credits"
// columns. A goal without a readable credit value awards the default.
func (w *Workbook) parseGoals(rows [][]string) map[string][]model.Goal {
	goals := make(map[string][]model.Goal)
	if len(rows) == 0 {
		return goals
	}
	for _, name := range w.Roster {
		goalCol := findHeader(rows[0], func(h string) bool { return h == name+" Goal" })
		if goalCol < 0 {
			continue
		}
		creditCol := findHeader(rows[0], func(h string) bool { return h == name+" Goal Credits" })
		list := []model.Goal{}
		for _, row := range rows[1:] {
			g := model.Goal{Name: cell(row, goalCol)}
			if g.Name == "" {
				continue
			}
			if n, ok := parseLeadingInt(cell(row, creditCol)); ok && n > 0 {
				g.Credits = n
			}
			list = append(list, g)
		}
		goals[name] = list
	}
	return goals
}

// parseMenu reads a name column per category followed by its inventory
// column. Only an inventory cell reading "yes" puts an item in stock, so a
// category with no inventory column is entirely out of stock.
func parseMenu(rows [][]string) map[model.FoodCategory][]model.FoodItem {
	food := make(map[model.FoodCategory][]model.FoodItem)
	if len(rows) == 0 {
		return food
	}
	header := rows[0]
	for _, mh := range menuHeaders {
		col := findHeader(header, func(h string) bool { return h == mh.header })
		if col < 0 {
			continue
		}
		items := []model.FoodItem{}
		for _, row := range rows[1:] {
			name := cell(row, col)
			if name == "" {
				continue
			}
			items = append(items, model.FoodItem{
				Name:    name,
				InStock: strings.EqualFold(cell(row, col+1), "yes"),
			})
		}
		food[mh.cat] = items
	}
	return food
}

// parseRewards reads a name column per participant followed by its cost
// column. Reward IDs are "<Name>-<row index>".
func (w *Workbook) parseRewards(rows [][]string) map[string][]model.Reward {
	rewards := make(map[string][]model.Reward)
	if len(rows) == 0 {
		return rewards
	}
	for _, name := range w.Roster {
		col := findHeader(rows[0], func(h string) bool { return strings.Contains(h, name) })
		if col < 0 {
			continue
		}
		list := []model.Reward{}
		for _, row := range rows[1:] {
			title := cell(row, col)
			if title == "" {
				continue
			}
			cost, _ := parseLeadingInt(cell(row, col+1))
			list = append(list, model.Reward{
				ID:   fmt.Sprintf("%s-%d", name, len(list)),
				Name: title,
				Cost: max(cost, 0),
			})
		}
		rewards[name] = list
	}
	return rewards
}

// parseLeadingInt reads an optional sign and the digits that follow, so
// "3", "3.0" and "3 credits" all read as 3.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
