// Package sports holds the static sport configuration registry. It is the
// single source of truth for which expense fields exist per sport, how they
// are labeled, and which of them sum into an expense total. Adding a sport
// means adding a registry entry here and nothing else.
package sports

const (
	CategoryVenue     = "venue"
	CategoryEquipment = "equipment"
	CategoryPersonnel = "personnel"
	CategoryMisc      = "misc"
)

// DefaultSport is the fallback for unknown sport keys.
const DefaultSport = "badminton"

type ExpenseField struct {
	Label            string `json:"label"`
	Category         string `json:"category"`
	CountsInTotal    bool   `json:"countsInTotal"`
	AllowsCustomName bool   `json:"-"`
}

type DynamicField struct {
	Type    string   `json:"type"` // "select" or "multi-select"
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

type Config struct {
	Key           string                  `json:"key"`
	Name          string                  `json:"name"`
	Icon          string                  `json:"icon"`
	ExpenseFields map[string]ExpenseField `json:"expenseFields"`
	DynamicFields map[string]DynamicField `json:"dynamicFields,omitempty"`
	FieldOrder    []string                `json:"fieldOrder"`
}

var registry = map[string]Config{
	"badminton": {
		Key:  "badminton",
		Name: "Badminton",
		Icon: "🏸",
		ExpenseFields: map[string]ExpenseField{
			"indoor":      {Label: "Indoor Court Fee", Category: CategoryVenue, CountsInTotal: true},
			"shuttlecock": {Label: "Shuttlecock Cost", Category: CategoryEquipment, CountsInTotal: true},
			"equipment":   {Label: "Equipment Cost", Category: CategoryEquipment, CountsInTotal: true},
			"other":       {Label: "Other Expenses", Category: CategoryMisc, CountsInTotal: true},
		},
		DynamicFields: map[string]DynamicField{
			"shuttlecockUsed": {
				Type:    "multi-select",
				Label:   "Shuttlecocks Used",
				Options: []string{"Aeroplane", "Ling-Mei", "Yonex AS-50", "Yonex AS-40", "Victor Gold", "Li-Ning A+600", "Custom"},
			},
		},
		FieldOrder: []string{"indoor", "shuttlecock", "equipment", "other"},
	},
	"cricket": {
		Key:  "cricket",
		Name: "Cricket",
		Icon: "🏏",
		ExpenseFields: map[string]ExpenseField{
			"ground":      {Label: "Ground Rental", Category: CategoryVenue, CountsInTotal: true},
			"indoor":      {Label: "Indoor Facility Fee", Category: CategoryVenue, CountsInTotal: true},
			"tournaments": {Label: "Tournament Fees", Category: CategoryVenue, CountsInTotal: true},
			"ball":        {Label: "Cricket Balls", Category: CategoryEquipment, CountsInTotal: true},
			"batting":     {Label: "Batting Gear", Category: CategoryEquipment, CountsInTotal: true},
			"protective":  {Label: "Protective Gear", Category: CategoryEquipment, CountsInTotal: true},
			"umpire":      {Label: "Umpire Fees", Category: CategoryPersonnel, CountsInTotal: true},
			"custom":      {Label: "Custom Expense", Category: CategoryMisc, CountsInTotal: true, AllowsCustomName: true},
			"other":       {Label: "Other Expenses", Category: CategoryMisc, CountsInTotal: true},
		},
		DynamicFields: map[string]DynamicField{
			"ballType": {
				Type:    "select",
				Label:   "Ball Type",
				Options: []string{"Leather", "Tennis", "Plastic", "Other"},
			},
		},
		FieldOrder: []string{"ground", "indoor", "tournaments", "ball", "batting", "protective", "umpire", "custom", "other"},
	},
	"football": {
		Key:  "football",
		Name: "Football",
		Icon: "⚽",
		ExpenseFields: map[string]ExpenseField{
			"field":   {Label: "Field Rental", Category: CategoryVenue, CountsInTotal: true},
			"balls":   {Label: "Football Cost", Category: CategoryEquipment, CountsInTotal: true},
			"jersey":  {Label: "Jersey Cost", Category: CategoryEquipment, CountsInTotal: true},
			"referee": {Label: "Referee Fees", Category: CategoryPersonnel, CountsInTotal: true},
			"other":   {Label: "Other Expenses", Category: CategoryMisc, CountsInTotal: true},
		},
		FieldOrder: []string{"field", "balls", "jersey", "referee", "other"},
	},
	"basketball": {
		Key:  "basketball",
		Name: "Basketball",
		Icon: "🏀",
		ExpenseFields: map[string]ExpenseField{
			"court":  {Label: "Court Rental", Category: CategoryVenue, CountsInTotal: true},
			"balls":  {Label: "Basketball Cost", Category: CategoryEquipment, CountsInTotal: true},
			"jersey": {Label: "Jersey Cost", Category: CategoryEquipment, CountsInTotal: true},
			"other":  {Label: "Other Expenses", Category: CategoryMisc, CountsInTotal: true},
		},
		FieldOrder: []string{"court", "balls", "jersey", "other"},
	},
	"tennis": {
		Key:  "tennis",
		Name: "Tennis",
		Icon: "🎾",
		ExpenseFields: map[string]ExpenseField{
			"court":  {Label: "Court Rental", Category: CategoryVenue, CountsInTotal: true},
			"balls":  {Label: "Tennis Balls", Category: CategoryEquipment, CountsInTotal: true},
			"racket": {Label: "Racket Maintenance", Category: CategoryEquipment, CountsInTotal: true},
			"other":  {Label: "Other Expenses", Category: CategoryMisc, CountsInTotal: true},
		},
		DynamicFields: map[string]DynamicField{
			"ballType": {
				Type:    "select",
				Label:   "Ball Type",
				Options: []string{"Regular", "Championship", "Practice", "Other"},
			},
		},
		FieldOrder: []string{"court", "balls", "racket", "other"},
	},
}

// sportOrder fixes the listing order for List; map iteration is random.
var sportOrder = []string{"badminton", "cricket", "football", "basketball", "tennis"}

// GetConfig returns the configuration for the given sport key, falling back
// to the default sport for unknown keys.
func GetConfig(key string) Config {
	if cfg, ok := registry[key]; ok {
		return cfg
	}
	return registry[DefaultSport]
}

// Known reports whether the key names a registered sport.
func Known(key string) bool {
	_, ok := registry[key]
	return ok
}

// List returns all registered sports in stable order.
func List() []Config {
	out := make([]Config, 0, len(sportOrder))
	for _, key := range sportOrder {
		out = append(out, registry[key])
	}
	return out
}

// TotalFields returns the expense field keys that sum into an expense total
// for the given sport.
func TotalFields(key string) []string {
	cfg := GetConfig(key)
	fields := make([]string, 0, len(cfg.FieldOrder))
	for _, fk := range cfg.FieldOrder {
		if f, ok := cfg.ExpenseFields[fk]; ok && f.CountsInTotal {
			fields = append(fields, fk)
		}
	}
	return fields
}

// CategoryTotals buckets the cost fields of one expense's field map into the
// four spending categories. Unknown fields are ignored.
func CategoryTotals(sportKey string, fields map[string]float64) map[string]float64 {
	cfg := GetConfig(sportKey)
	totals := map[string]float64{
		CategoryVenue:     0,
		CategoryEquipment: 0,
		CategoryPersonnel: 0,
		CategoryMisc:      0,
	}
	for fk, amount := range fields {
		f, ok := cfg.ExpenseFields[fk]
		if !ok || !f.CountsInTotal {
			continue
		}
		cat := f.Category
		if cat == "" {
			cat = CategoryMisc
		}
		totals[cat] += amount
	}
	return totals
}
