package rules

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

const (
	DefaultWinnerUnit   = 100
	DefaultAccuracyUnit = 100
	DefaultJackpotUnit  = 400
)

// Decimal parses yaml scalars through their literal text, so a weight of 1.4
// stays exactly 1.4.
type Decimal struct {
	decimal.Decimal
}

func (d *Decimal) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var buf string
	if err := unmarshal(&buf); err != nil {
		return err
	}

	dec, err := decimal.NewFromString(strings.TrimSpace(buf))
	if err != nil {
		return err
	}
	d.Decimal = dec
	return nil
}

func (d Decimal) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

type RoundWeight struct {
	Round  uint
	Name   string
	Weight Decimal
}

type MultiplierBounds struct {
	Min int64
	Max int64
}

// Rulebook is the scoring configuration of the league: predictor point units,
// round weights, fantasy multiplier bounds and the accuracy pot split policy.
type Rulebook struct {
	Weights      []RoundWeight
	WinnerUnit   int64 `yaml:"winnerUnit"`
	AccuracyUnit int64 `yaml:"accuracyUnit"`
	JackpotUnit  int64 `yaml:"jackpotUnit"`
	Multiplier   MultiplierBounds
	Splits       SplitSpec
}

func defaultWeights() []RoundWeight {
	return []RoundWeight{
		{Round: 1, Name: "Wild Card", Weight: Decimal{decimal.RequireFromString("1.0")}},
		{Round: 2, Name: "Divisional", Weight: Decimal{decimal.RequireFromString("1.4")}},
		{Round: 3, Name: "Conference Championship", Weight: Decimal{decimal.RequireFromString("1.8")}},
		{Round: 4, Name: "Super Bowl", Weight: Decimal{decimal.RequireFromString("2.5")}},
	}
}

func Default() *Rulebook {
	book := &Rulebook{}
	book.applyDefaults()
	if err := book.build(); err != nil {
		panic(err)
	}
	return book
}

func Parse(body []byte) (*Rulebook, error) {
	book := &Rulebook{}
	if err := yaml.Unmarshal(body, book); err != nil {
		return nil, errors.Wrap(err, "Failed to unmarshal rulebook")
	}

	book.applyDefaults()
	if err := book.build(); err != nil {
		return nil, err
	}

	return book, nil
}

func (r *Rulebook) applyDefaults() {
	if len(r.Weights) == 0 {
		r.Weights = defaultWeights()
	}
	if r.WinnerUnit == 0 {
		r.WinnerUnit = DefaultWinnerUnit
	}
	if r.AccuracyUnit == 0 {
		r.AccuracyUnit = DefaultAccuracyUnit
	}
	if r.JackpotUnit == 0 {
		r.JackpotUnit = DefaultJackpotUnit
	}
	if r.Multiplier.Min == 0 && r.Multiplier.Max == 0 {
		r.Multiplier = MultiplierBounds{Min: 1, Max: 6}
	}
	if r.Splits.Policy == nil {
		r.Splits = SplitSpec{Kind: "table", Policy: defaultTableSplit()}
	}
}

func (r *Rulebook) build() error {
	if r.WinnerUnit <= 0 {
		return errors.Errorf("Winner unit must be positive, got %d", r.WinnerUnit)
	}
	if r.AccuracyUnit <= 0 {
		return errors.Errorf("Accuracy unit must be positive, got %d", r.AccuracyUnit)
	}
	if r.JackpotUnit <= 0 {
		return errors.Errorf("Jackpot unit must be positive, got %d", r.JackpotUnit)
	}
	if r.Multiplier.Min < 1 || r.Multiplier.Max < r.Multiplier.Min {
		return errors.Errorf("Invalid multiplier bounds [%d, %d]", r.Multiplier.Min, r.Multiplier.Max)
	}

	seen := make(map[uint]bool, len(r.Weights))
	for _, w := range r.Weights {
		if w.Round == 0 {
			return errors.New("Round numbers start at 1")
		}
		if seen[w.Round] {
			return errors.Errorf("Duplicate weight for round %d", w.Round)
		}
		seen[w.Round] = true
		if !w.Weight.IsPositive() {
			return errors.Errorf("Weight for round %d must be positive, got %s", w.Round, w.Weight)
		}
	}

	if err := r.Splits.Policy.validate(); err != nil {
		return errors.Wrap(err, "Invalid split policy")
	}

	return nil
}

var weightOne = decimal.NewFromInt(1)

// WeightForRound returns the predictor weight of a round number.
// Rounds missing from the rulebook are unweighted.
func (r *Rulebook) WeightForRound(number uint) decimal.Decimal {
	for _, w := range r.Weights {
		if w.Round == number {
			return w.Weight.Decimal
		}
	}
	return weightOne
}

func (r *Rulebook) RoundName(number uint) string {
	for _, w := range r.Weights {
		if w.Round == number {
			return w.Name
		}
	}
	return ""
}

func (r *Rulebook) ClampMultiplier(multiplier int64) int64 {
	if multiplier < r.Multiplier.Min {
		return r.Multiplier.Min
	}
	if multiplier > r.Multiplier.Max {
		return r.Multiplier.Max
	}
	return multiplier
}
