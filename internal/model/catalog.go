package model

// FoodItem is one menu option.
type FoodItem struct {
	Name    string `json:"name"`
	InStock bool   `json:"in_stock"`
}

type Reward struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Cost int    `json:"cost"`
}

// Goal is a weekend goal. Credits of zero means "use Config.CreditsPerGoal".
type Goal struct {
	Name    string `json:"name"`
	Credits int    `json:"credits"`
}

// Catalog is the spreadsheet-owned configuration: task lists, menu, rewards, goals.
type Catalog struct {
	Tasks   map[Mode]map[string][]string `json:"tasks"`
	Food    map[FoodCategory][]FoodItem  `json:"food"`
	Rewards map[string][]Reward          `json:"rewards"`
	Goals   map[string][]Goal            `json:"goals"`
}

func NewCatalog() *Catalog {
	return &Catalog{
		Tasks:   make(map[Mode]map[string][]string),
		Food:    make(map[FoodCategory][]FoodItem),
		Rewards: make(map[string][]Reward),
		Goals:   make(map[string][]Goal),
	}
}

// TasksFor returns the task list for a participant in a mode, nil-safe.
func (c *Catalog) TasksFor(mode Mode, participant string) []string {
	if c == nil || c.Tasks == nil {
		return nil
	}
	return c.Tasks[mode][participant]
}

// InStock counts the in-stock options of a category.
func (c *Catalog) InStock(cat FoodCategory) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, item := range c.Food[cat] {
		if item.InStock {
			n++
		}
	}
	return n
}

// Reward looks up a participant's reward by ID.
func (c *Catalog) Reward(participant, id string) (Reward, bool) {
	if c == nil {
		return Reward{}, false
	}
	for _, r := range c.Rewards[participant] {
		if r.ID == id {
			return r, true
		}
	}
	return Reward{}, false
}

// Goal looks up a participant's goal by name.
func (c *Catalog) Goal(participant, name string) (Goal, bool) {
	if c == nil {
		return Goal{}, false
	}
	for _, g := range c.Goals[participant] {
		if g.Name == name {
			return g, true
		}
	}
	return Goal{}, false
}

// Award is the credit value of approving g.
func (g Goal) Award(defaultCredits int) int {
	if g.Credits > 0 {
		return g.Credits
	}
	return defaultCredits
}

// Clone returns a deep copy of the catalog; a nil catalog clones to an empty one.
func (c *Catalog) Clone() *Catalog {
	out := NewCatalog()
	if c == nil {
		return out
	}
	for mode, byName := range c.Tasks {
		m := make(map[string][]string, len(byName))
		for name, tasks := range byName {
			m[name] = append([]string(nil), tasks...)
		}
		out.Tasks[mode] = m
	}
	for cat, items := range c.Food {
		out.Food[cat] = append([]FoodItem(nil), items...)
	}
	for name, rewards := range c.Rewards {
		out.Rewards[name] = append([]Reward(nil), rewards...)
	}
	for name, goals := range c.Goals {
		out.Goals[name] = append([]Goal(nil), goals...)
	}
	return out
}
