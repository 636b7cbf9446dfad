package rules

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// PotBasis is one whole pot expressed in basis points.
const PotBasis = 10000

// SplitPolicy decides how an accuracy pot is divided between ranked winners.
type SplitPolicy interface {
	// Shares returns the pot shares of ranks 1..k in basis points.
	// The shares are non-increasing and always sum to exactly PotBasis.
	Shares(k int) []int64

	validate() error
}

type SplitSpec struct {
	Kind   string
	Policy SplitPolicy `yaml:"-" json:"-"`
}

type yamlNode struct {
	unmarshal func(interface{}) error
}

func (n *yamlNode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	n.unmarshal = unmarshal
	return nil
}

func (s *SplitSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type S SplitSpec
	type T struct {
		S    `yaml:",inline"`
		Spec yamlNode `yaml:"spec"`
	}

	obj := &T{}
	if err := unmarshal(obj); err != nil {
		return err
	}
	*s = SplitSpec(obj.S)

	switch s.Kind {
	case "linear":
		s.Policy = new(LinearSplit)
	case "table":
		s.Policy = new(TableSplit)
	default:
		return fmt.Errorf("Unknown split policy %s", s.Kind)
	}
	if obj.Spec.unmarshal == nil {
		return nil
	}
	return obj.Spec.unmarshal(s.Policy)
}

////////////////////////////////////////////////////////////////////////////////

// LinearSplit gives rank r a share proportional to k-r+1, remainder basis
// points going to the top ranks.
type LinearSplit struct{}

func (s *LinearSplit) Shares(k int) []int64 {
	if k <= 0 {
		return nil
	}

	total := int64(k) * int64(k+1) / 2
	shares := make([]int64, k)
	left := int64(PotBasis)
	for r := range shares {
		shares[r] = int64(k-r) * PotBasis / total
		left -= shares[r]
	}
	for r := int64(0); r < left; r++ {
		shares[r]++
	}

	return shares
}

func (s *LinearSplit) validate() error {
	return nil
}

////////////////////////////////////////////////////////////////////////////////

// TableSplit takes explicit percentage rows, one row per pot size k=len(row).
// Pot sizes beyond the table fall back to the linear profile.
type TableSplit struct {
	Rows [][]Decimal `yaml:"rows"`

	shares map[int][]int64
	linear LinearSplit
}

func (s *TableSplit) Shares(k int) []int64 {
	if row, ok := s.shares[k]; ok {
		out := make([]int64, len(row))
		copy(out, row)
		return out
	}
	return s.linear.Shares(k)
}

var hundred = decimal.NewFromInt(100)

func (s *TableSplit) validate() error {
	s.shares = make(map[int][]int64, len(s.Rows))
	for _, row := range s.Rows {
		k := len(row)
		if _, ok := s.shares[k]; ok {
			return errors.Errorf("Duplicate split row for pot size %d", k)
		}

		bps := make([]int64, k)
		var sum int64
		for i, p := range row {
			v := p.Mul(hundred)
			if !v.IsInteger() {
				return errors.Errorf("Split percentage %s is finer than 0.01%%", p)
			}
			bps[i] = v.IntPart()
			if bps[i] <= 0 {
				return errors.Errorf("Split percentage %s must be positive", p)
			}
			if i > 0 && bps[i] > bps[i-1] {
				return errors.Errorf("Split percentages must not increase, got %s after %s", p, row[i-1])
			}
			sum += bps[i]
		}
		if sum != PotBasis {
			return errors.Errorf("Split row for pot size %d sums to %d basis points, want %d", k, sum, PotBasis)
		}

		s.shares[k] = bps
	}
	return nil
}

func defaultTableSplit() *TableSplit {
	split := &TableSplit{
		Rows: [][]Decimal{
			percents(100),
			percents(60, 40),
			percents(45, 33, 22),
			percents(40, 30, 20, 10),
		},
	}
	if err := split.validate(); err != nil {
		panic(err)
	}
	return split
}

func percents(values ...int64) []Decimal {
	row := make([]Decimal, len(values))
	for i, v := range values {
		row[i] = Decimal{decimal.NewFromInt(v)}
	}
	return row
}
