// Package catalog is the fixed registry of conversion categories and their operations.
package catalog

import (
	"fmt"

	"github.com/amirasaad/converter/pkg/domain"
	"github.com/amirasaad/converter/pkg/rates"
)

// Category is a top-level conversion domain.
type Category int

const (
	Currency Category = iota
	Temperature
	Distance
)

var categoryNames = map[Category]string{
	Currency:    "Currency",
	Temperature: "Temperature",
	Distance:    "Distance",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Formula computes a converted value from an amount and the current rate table.
type Formula func(amount float64, table rates.Table) (float64, error)

// Operation is one directional conversion inside a category.
type Operation struct {
	Label    string
	Category Category
	// FromUnit and ToUnit are appended to the amount and result in display text,
	// including any leading space (" USD", "°C").
	FromUnit string
	ToUnit   string
	Formula  Formula
}

// Operation labels
const (
	USDToKES            = "USD to KES"
	EURToKES            = "EUR to KES"
	GBPToKES            = "GBP to KES"
	KESToUGX            = "KES to UGX"
	CelsiusToFahrenheit = "Celsius to Fahrenheit"
	FahrenheitToCelsius = "Fahrenheit to Celsius"
	KilometersToMiles   = "Kilometers to Miles"
	MilesToKilometers   = "Miles to Kilometers"
)

const (
	kmPerMile  = 1.60934
	milesPerKm = 0.621371
)

var operations = map[Category][]Operation{
	Currency: {
		{Label: USDToKES, Category: Currency, FromUnit: " USD", ToUnit: " KES", Formula: func(a float64, t rates.Table) (float64, error) {
			kes, err := t.Rate(rates.KES)
			if err != nil {
				return 0, err
			}
			return a * kes, nil
		}},
		{Label: EURToKES, Category: Currency, FromUnit: " EUR", ToUnit: " KES", Formula: cross(rates.EUR, rates.KES)},
		{Label: GBPToKES, Category: Currency, FromUnit: " GBP", ToUnit: " KES", Formula: cross(rates.GBP, rates.KES)},
		{Label: KESToUGX, Category: Currency, FromUnit: " KES", ToUnit: " UGX", Formula: cross(rates.KES, rates.UGX)},
	},
	Temperature: {
		{Label: CelsiusToFahrenheit, Category: Temperature, FromUnit: "°C", ToUnit: "°F", Formula: func(a float64, _ rates.Table) (float64, error) {
			return a*9/5 + 32, nil
		}},
		{Label: FahrenheitToCelsius, Category: Temperature, FromUnit: "°F", ToUnit: "°C", Formula: func(a float64, _ rates.Table) (float64, error) {
			return (a - 32) * 5 / 9, nil
		}},
	},
	Distance: {
		{Label: KilometersToMiles, Category: Distance, FromUnit: " km", ToUnit: " miles", Formula: func(a float64, _ rates.Table) (float64, error) {
			return a * milesPerKm, nil
		}},
		{Label: MilesToKilometers, Category: Distance, FromUnit: " miles", ToUnit: " km", Formula: func(a float64, _ rates.Table) (float64, error) {
			return a * kmPerMile, nil
		}},
	},
}

// cross converts through USD: amount * (rate(to) / rate(from)).
func cross(from, to string) Formula {
	return func(a float64, t rates.Table) (float64, error) {
		src, err := t.Rate(from)
		if err != nil {
			return 0, err
		}
		dst, err := t.Rate(to)
		if err != nil {
			return 0, err
		}
		return a * (dst / src), nil
	}
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{Currency, Temperature, Distance}
}

// ParseCategory resolves a display name to a Category.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories() {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, name)
}

// OperationsFor returns the operations of c in display order.
func OperationsFor(c Category) []Operation {
	ops := operations[c]
	out := make([]Operation, len(ops))
	copy(out, ops)
	return out
}

// Labels returns the operation labels of c in display order.
func Labels(c Category) []string {
	ops := operations[c]
	labels := make([]string, 0, len(ops))
	for _, op := range ops {
		labels = append(labels, op.Label)
	}
	return labels
}

// DefaultOperation is the operation selected whenever c becomes the current category.
func DefaultOperation(c Category) (Operation, bool) {
	ops := operations[c]
	if len(ops) == 0 {
		return Operation{}, false
	}
	return ops[0], true
}

// Lookup finds the operation with label inside c.
func Lookup(c Category, label string) (Operation, error) {
	for _, op := range operations[c] {
		if op.Label == label {
			return op, nil
		}
	}
	return Operation{}, fmt.Errorf("%w: %q in %s", domain.ErrUnknownOperation, label, c)
}

// Prompt is the caption shown above the operation selector for c.
func Prompt(c Category) string {
	if _, ok := categoryNames[c]; !ok {
		return "Select Conversion:"
	}
	return fmt.Sprintf("Select %s Conversion:", c)
}
