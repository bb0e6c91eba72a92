package kernel

import (
	"errors"

	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Load is a weight (kg) and volume (m³) pair.
// Arithmetic is exact so that reserve followed by release restores the previous value.
type Load struct {
	weight decimal.Decimal
	volume decimal.Decimal
}

// ZeroLoad is the empty load.
var ZeroLoad = Load{}

// LoadPrecision is the number of decimal places kept for weight and volume.
// It matches the numeric(14,3) storage columns.
const LoadPrecision = 3

// minLoadComponent is the smallest positive value representable at LoadPrecision.
var minLoadComponent = decimal.New(1, -LoadPrecision)

// NewLoad builds a load rounded to LoadPrecision places.
//
// Parameters:
//   - weight: kilograms, must not be negative
//   - volume: cubic metres, must not be negative
//
// Returns:
//   - Load: the rounded load
//   - error: ErrValueIsOutOfRange when a component is negative, or positive
//     but too small to survive rounding
func NewLoad(weight, volume decimal.Decimal) (Load, error) {
	w, weightErr := roundLoadComponent("weight", weight)
	v, volumeErr := roundLoadComponent("volume", volume)
	if err := errors.Join(weightErr, volumeErr); err != nil {
		return Load{}, err
	}
	return Load{weight: w, volume: v}, nil
}

func roundLoadComponent(name string, value decimal.Decimal) (decimal.Decimal, error) {
	if value.IsNegative() {
		return decimal.Zero, errs.NewValueIsOutOfRangeError(name, value, 0, "unbounded")
	}
	rounded := value.Round(LoadPrecision)
	if value.IsPositive() && rounded.IsZero() {
		return decimal.Zero, errs.NewValueIsOutOfRangeError(name, value, minLoadComponent, "unbounded")
	}
	return rounded, nil
}

// NewLoadFromFloat is a convenience for API payloads expressed as floats.
func NewLoadFromFloat(weight, volume float64) (Load, error) {
	return NewLoad(decimal.NewFromFloat(weight), decimal.NewFromFloat(volume))
}

func (l Load) Weight() decimal.Decimal { return l.weight }
func (l Load) Volume() decimal.Decimal { return l.volume }

// Add returns l + other.
func (l Load) Add(other Load) Load {
	return Load{weight: l.weight.Add(other.weight), volume: l.volume.Add(other.volume)}
}

// SubClamped returns l - other with each component floored at zero.
// clamped reports whether any component would have gone negative.
func (l Load) SubClamped(other Load) (result Load, clamped bool) {
	w := l.weight.Sub(other.weight)
	v := l.volume.Sub(other.volume)
	if w.IsNegative() {
		w, clamped = decimal.Zero, true
	}
	if v.IsNegative() {
		v, clamped = decimal.Zero, true
	}
	return Load{weight: w, volume: v}, clamped
}

// Fits reports whether l fits within limit in both dimensions.
func (l Load) Fits(limit Load) bool {
	return l.weight.LessThanOrEqual(limit.weight) && l.volume.LessThanOrEqual(limit.volume)
}

// IsZero reports an empty load.
func (l Load) IsZero() bool {
	return l.weight.IsZero() && l.volume.IsZero()
}

// Equal compares numerically, ignoring decimal exponent differences.
func (l Load) Equal(other Load) bool {
	return l.weight.Equal(other.weight) && l.volume.Equal(other.volume)
}

func (l Load) String() string {
	return l.weight.String() + "kg / " + l.volume.String() + "m³"
}
