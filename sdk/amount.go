package sdk

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// AmountDecimals is the fixed-point precision of asset amounts:
// "1.000" hive is stored as 1000 units.
const AmountDecimals = 3

var ErrInvalidAmount = errors.New("ErrInvalidAmount")

var unit = decimal.New(1, AmountDecimals)

// ParseAmount converts a decimal string into integer units. More than
// AmountDecimals fractional digits or a negative value is rejected.
func ParseAmount(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidAmount, "parse %q: %v", s, err)
	}
	if d.IsNegative() {
		return 0, errors.Wrapf(ErrInvalidAmount, "negative amount %q", s)
	}
	units := d.Mul(unit)
	if !units.Equal(units.Truncate(0)) {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q has more than %d decimals", s, AmountDecimals)
	}
	if units.GreaterThan(decimal.New(1<<62, 0)) {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q out of range", s)
	}
	return uint64(units.IntPart()), nil
}

// FormatAmount renders integer units with AmountDecimals decimals.
func FormatAmount(units uint64) string {
	return decimal.New(int64(units), -AmountDecimals).StringFixed(AmountDecimals)
}
