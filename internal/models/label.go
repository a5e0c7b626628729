package models

import "strings"

// Label is the budgeting bucket a transaction belongs to. The set is closed:
// classification always resolves to exactly one of these values.
type Label string

const (
	LabelNeeds      Label = "Needs"
	LabelWants      Label = "Wants"
	LabelLuxury     Label = "Luxury"
	LabelSavings    Label = "Savings"
	LabelInvestment Label = "Investment"
	LabelUnlabeled  Label = "Unlabeled"
)

// AllLabels lists every label in presentation order.
var AllLabels = []Label{
	LabelNeeds,
	LabelWants,
	LabelLuxury,
	LabelSavings,
	LabelInvestment,
	LabelUnlabeled,
}

// labelCodes maps the single-letter codes used in workbook Label columns
// to their labels. Full label words are accepted as well.
var labelCodes = map[string]Label{
	"n": LabelNeeds,
	"w": LabelWants,
	"l": LabelLuxury,
	"s": LabelSavings,
	"i": LabelInvestment,
}

// ParseLabelCode resolves a raw Label cell value to a Label. It accepts the
// single-letter codes N/W/L/S/I and the full label words, case-insensitively.
// Unrecognized or blank values return (LabelUnlabeled, false).
func ParseLabelCode(raw string) (Label, bool) {
	code := strings.ToLower(strings.TrimSpace(raw))
	if code == "" {
		return LabelUnlabeled, false
	}
	if label, ok := labelCodes[code]; ok {
		return label, true
	}
	for _, label := range AllLabels {
		if code == strings.ToLower(string(label)) {
			return label, label != LabelUnlabeled
		}
	}
	return LabelUnlabeled, false
}

// IsSpending reports whether the label counts toward spending rather than
// money set aside. Savings and Investment are the set-aside labels.
func (l Label) IsSpending() bool {
	return l != LabelSavings && l != LabelInvestment
}

func (l Label) String() string {
	return string(l)
}
