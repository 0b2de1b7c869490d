package compare

import (
	"strings"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

// Row names of the default table.
const (
	AttrPrice        = "Price"
	AttrYear         = "Year"
	AttrMileage      = "Mileage"
	AttrFuelType     = "Fuel Type"
	AttrTransmission = "Transmission"
	AttrCondition    = "Condition"
)

// DefaultAttributes returns the storefront comparison rows.
func DefaultAttributes() []Attribute {
	return []Attribute{
		{
			Name:  AttrPrice,
			Rule:  RuleMin,
			Value: func(c dal.Car) Value { return Number(c.Price) },
			Key:   func(c dal.Car) int { return c.Price },
		},
		{
			Name:  AttrYear,
			Rule:  RuleMax,
			Value: func(c dal.Car) Value { return Number(c.Year) },
			Key:   func(c dal.Car) int { return c.Year },
		},
		{
			Name: AttrMileage,
			Rule: RuleConditionOverride,
			Value: func(c dal.Car) Value {
				if c.IsNew() {
					return Text("New")
				}
				return Number(c.Mileage)
			},
			Key: func(c dal.Car) int { return c.Mileage },
		},
		{
			Name:  AttrFuelType,
			Rule:  RuleNone,
			Value: func(c dal.Car) Value { return textOrNull(c.FuelType) },
		},
		{
			Name:  AttrTransmission,
			Rule:  RuleNone,
			Value: func(c dal.Car) Value { return textOrNull(c.Transmission) },
		},
		{
			Name:  AttrCondition,
			Rule:  RuleFirstNew,
			Value: func(c dal.Car) Value { return textOrNull(titleCase(string(c.Condition))) },
		},
	}
}

var defaultRegistry = NewRegistry(DefaultAttributes()...)

// Compare builds the default comparison table.
func Compare(cars []dal.Car) ([]Spec, error) {
	return defaultRegistry.Compare(cars)
}

func textOrNull(s string) Value {
	if s == "" {
		return Null()
	}
	return Text(s)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
