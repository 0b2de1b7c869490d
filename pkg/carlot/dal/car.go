package dal

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Condition is the sale condition of a listing.
type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

// ParseCondition maps a free-form string onto a Condition.
func ParseCondition(s string) (Condition, error) {
	switch Condition(strings.ToLower(strings.TrimSpace(s))) {
	case ConditionNew:
		return ConditionNew, nil
	case ConditionUsed:
		return ConditionUsed, nil
	}
	return "", fmt.Errorf("unknown condition %q", s)
}

// UnmarshalYAML rejects anything that is not new or used.
func (c *Condition) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseCondition(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Car defines a single vehicle listing. Listings are immutable once loaded.
type Car struct {
	ID           string    `json:"id" yaml:"id"`
	Make         string    `json:"make" yaml:"make"`
	Model        string    `json:"model" yaml:"model"`
	Year         int       `json:"year" yaml:"year"`
	Price        int       `json:"price" yaml:"price"`
	Mileage      int       `json:"mileage" yaml:"mileage"`
	FuelType     string    `json:"fuelType" yaml:"fuel_type"`
	Transmission string    `json:"transmission" yaml:"transmission"`
	Condition    Condition `json:"condition" yaml:"condition"`
	Featured     bool      `json:"featured" yaml:"featured"`
	Category     string    `json:"category,omitempty" yaml:"category"`
}

// IsNew reports whether the car is sold as new.
func (c Car) IsNew() bool {
	return c.Condition == ConditionNew
}

// Title is the display name, e.g. "2021 Toyota Camry".
func (c Car) Title() string {
	return fmt.Sprintf("%d %s %s", c.Year, c.Make, c.Model)
}

// MarshalJSON hides the mileage of new cars, it carries no meaning there.
func (c Car) MarshalJSON() ([]byte, error) {
	type plain Car
	out := struct {
		plain
		Mileage *int `json:"mileage"`
	}{plain: plain(c)}
	if !c.IsNew() {
		m := c.Mileage
		out.Mileage = &m
	}
	return json.Marshal(out)
}
