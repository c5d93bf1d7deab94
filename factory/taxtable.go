/*
Package factory provides JSON/YAML to Go tax-table conversion.

PURPOSE:
  Converts tax-table definitions into tax.Table values. Rates change every
  budget; a new table file lets the server pick them up without a release.

SCHEMA (YAML shown, JSON uses the same keys):
  year: 2025
  employee_rate_percent: 13.37
  employer_rate_percent: 21.79
  brackets:
    - {ceiling: 10000, rate_percent: 9}
    - {ceiling: 20000, rate_percent: 22}
    - {rate_percent: 44}            # no ceiling = open-ended top bracket
  solidarity_suspended: true
  solidarity_brackets:
    - {ceiling: 12000, rate_percent: 0}
    - {rate_percent: 10}
  child_credits: [777, 900, 1120]   # index = number of children
  credit_taper:
    threshold: 12000
    per_thousand: 20

DEFAULTS:
  - solidarity_brackets missing: a single 0 % bracket
  - child_credits shorter than 10: the last credit repeats
  - credit_taper missing: no taper

USAGE:
  f := NewTaxTableFactory()
  table, err := f.Load("tables/2025.yaml")

SEE ALSO:
  - tax/table.go: Table and Validate
  - cmd/server/main.go: -tax-table flag
*/
package factory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/tax"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// SCHEMA TYPES
// =============================================================================

// TaxTableJSON is the file representation of a tax table.
type TaxTableJSON struct {
	Year                int           `json:"year" yaml:"year"`
	EmployeeRatePercent float64       `json:"employee_rate_percent" yaml:"employee_rate_percent"`
	EmployerRatePercent float64       `json:"employer_rate_percent" yaml:"employer_rate_percent"`
	Brackets            []BracketJSON `json:"brackets" yaml:"brackets"`
	SolidaritySuspended bool          `json:"solidarity_suspended" yaml:"solidarity_suspended"`
	SolidarityBrackets  []BracketJSON `json:"solidarity_brackets,omitempty" yaml:"solidarity_brackets,omitempty"`
	ChildCredits        []float64     `json:"child_credits" yaml:"child_credits"`
	CreditTaper         *TaperJSON    `json:"credit_taper,omitempty" yaml:"credit_taper,omitempty"`
}

// BracketJSON is one bracket; a nil Ceiling is the open-ended top bracket.
type BracketJSON struct {
	Ceiling     *float64 `json:"ceiling" yaml:"ceiling"`
	RatePercent float64  `json:"rate_percent" yaml:"rate_percent"`
}

// TaperJSON configures the tax-credit reduction above a threshold.
type TaperJSON struct {
	Threshold   float64 `json:"threshold" yaml:"threshold"`
	PerThousand float64 `json:"per_thousand" yaml:"per_thousand"`
}

// =============================================================================
// TAX TABLE FACTORY
// =============================================================================

// TaxTableFactory converts table definitions to tax.Table.
type TaxTableFactory struct{}

// NewTaxTableFactory creates a new factory.
func NewTaxTableFactory() *TaxTableFactory {
	return &TaxTableFactory{}
}

// Parse parses a JSON definition.
func (f *TaxTableFactory) Parse(data []byte) (tax.Table, error) {
	var tj TaxTableJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return tax.Table{}, fmt.Errorf("failed to parse tax table JSON: %w", err)
	}
	return f.FromJSON(tj)
}

// ParseYAML parses a YAML definition.
func (f *TaxTableFactory) ParseYAML(data []byte) (tax.Table, error) {
	var tj TaxTableJSON
	if err := yaml.Unmarshal(data, &tj); err != nil {
		return tax.Table{}, fmt.Errorf("failed to parse tax table YAML: %w", err)
	}
	return f.FromJSON(tj)
}

// Load reads a definition from disk. Files ending in .yaml or .yml are read
// as YAML, everything else as JSON.
func (f *TaxTableFactory) Load(path string) (tax.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tax.Table{}, fmt.Errorf("failed to read tax table %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return f.ParseYAML(data)
	default:
		return f.Parse(data)
	}
}

// FromJSON converts a definition to a validated tax.Table.
func (f *TaxTableFactory) FromJSON(tj TaxTableJSON) (tax.Table, error) {
	if len(tj.ChildCredits) == 0 {
		return tax.Table{}, fmt.Errorf("%w: child_credits is required", generic.ErrInvalidTaxTable)
	}

	table := tax.Table{
		Year:                tj.Year,
		EmployeeRate:        percent(tj.EmployeeRatePercent),
		EmployerRate:        percent(tj.EmployerRatePercent),
		Brackets:            parseBrackets(tj.Brackets),
		SolidaritySuspended: tj.SolidaritySuspended,
		SolidarityBrackets:  parseBrackets(tj.SolidarityBrackets),
	}

	if len(table.SolidarityBrackets) == 0 {
		table.SolidarityBrackets = []tax.Bracket{{Rate: decimal.Zero}}
	}

	for n := range table.ChildCredits {
		i := min(n, len(tj.ChildCredits)-1)
		table.ChildCredits[n] = decimal.NewFromFloat(tj.ChildCredits[i])
	}

	if tj.CreditTaper != nil {
		table.CreditTaperThreshold = decimal.NewFromFloat(tj.CreditTaper.Threshold)
		table.CreditTaperPerThousand = decimal.NewFromFloat(tj.CreditTaper.PerThousand)
	}

	if err := table.Validate(); err != nil {
		return tax.Table{}, err
	}
	return table, nil
}

// ToJSON converts a table back to its file representation.
func (f *TaxTableFactory) ToJSON(table tax.Table) TaxTableJSON {
	tj := TaxTableJSON{
		Year:                table.Year,
		EmployeeRatePercent: toPercent(table.EmployeeRate),
		EmployerRatePercent: toPercent(table.EmployerRate),
		Brackets:            formatBrackets(table.Brackets),
		SolidaritySuspended: table.SolidaritySuspended,
		SolidarityBrackets:  formatBrackets(table.SolidarityBrackets),
		CreditTaper: &TaperJSON{
			Threshold:   table.CreditTaperThreshold.InexactFloat64(),
			PerThousand: table.CreditTaperPerThousand.InexactFloat64(),
		},
	}
	for _, c := range table.ChildCredits {
		tj.ChildCredits = append(tj.ChildCredits, c.InexactFloat64())
	}
	return tj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func percent(p float64) decimal.Decimal {
	return decimal.NewFromFloat(p).Div(generic.Hundred)
}

func toPercent(rate decimal.Decimal) float64 {
	return rate.Mul(generic.Hundred).InexactFloat64()
}

func parseBrackets(bjs []BracketJSON) []tax.Bracket {
	brackets := make([]tax.Bracket, 0, len(bjs))
	for _, bj := range bjs {
		b := tax.Bracket{Rate: percent(bj.RatePercent)}
		if bj.Ceiling != nil {
			c := decimal.NewFromFloat(*bj.Ceiling)
			b.Ceiling = &c
		}
		brackets = append(brackets, b)
	}
	return brackets
}

func formatBrackets(brackets []tax.Bracket) []BracketJSON {
	out := make([]BracketJSON, 0, len(brackets))
	for _, b := range brackets {
		bj := BracketJSON{RatePercent: toPercent(b.Rate)}
		if !b.IsUnbounded() {
			c := b.Ceiling.InexactFloat64()
			bj.Ceiling = &c
		}
		out = append(out, bj)
	}
	return out
}
