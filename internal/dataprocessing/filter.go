package dataprocessing

import (
	"fmt"
	"strings"

	"github.com/namitajha/Diabetes-data-Namita/internal/config"
	"github.com/namitajha/Diabetes-data-Namita/internal/errors"
)

// Predicate tests one raw cell value. No numeric parsing is applied.
type Predicate func(value string) bool

// HasPrefix matches cells starting with prefix
func HasPrefix(prefix string) Predicate {
	return func(v string) bool { return strings.HasPrefix(v, prefix) }
}

// Contains matches cells containing substr anywhere
func Contains(substr string) Predicate {
	return func(v string) bool { return strings.Contains(v, substr) }
}

// Equals matches cells equal to value
func Equals(value string) Predicate {
	return func(v string) bool { return v == value }
}

// Not negates p
func Not(p Predicate) Predicate {
	return func(v string) bool { return !p(v) }
}

// All matches when every predicate matches. All() matches everything.
func All(ps ...Predicate) Predicate {
	return func(v string) bool {
		for _, p := range ps {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// DiagnosisPredicate builds the matcher for a diagnosis code. "contains"
// also matches codes such as "V250"; "prefix" only matches the 250.xx family.
func DiagnosisPredicate(mode, code string) (Predicate, error) {
	switch mode {
	case config.MatchContains, "":
		return Contains(code), nil
	case config.MatchPrefix:
		return HasPrefix(code), nil
	default:
		return nil, errors.NewAppValidationError(fmt.Sprintf("unknown diagnosis match mode %q", mode), nil)
	}
}

// Filter returns the rows of ds whose value in column satisfies p, in their
// original order. Rows with a null cell in column never match.
func Filter(ds *Dataset, column string, p Predicate) (*Dataset, error) {
	if p == nil {
		return nil, errors.NewAppValidationError("nil predicate", nil)
	}
	idx, err := ds.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0)
	for _, row := range ds.rows {
		if v := row[idx]; !isNull(v) && p(v) {
			rows = append(rows, row)
		}
	}

	return newDataset(append([]string(nil), ds.columns...), rows), nil
}
