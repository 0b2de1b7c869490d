package compare

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

var (
	camry = dal.Car{ID: "car-1", Make: "Toyota", Model: "Camry", Year: 2021, Price: 24500, Mileage: 12500,
		FuelType: "Gasoline", Transmission: "Automatic", Condition: dal.ConditionUsed}
	accord = dal.Car{ID: "car-2", Make: "Honda", Model: "Accord", Year: 2023, Price: 28900,
		FuelType: "Gasoline", Transmission: "Automatic", Condition: dal.ConditionNew}
	model3 = dal.Car{ID: "car-3", Make: "Tesla", Model: "Model 3", Year: 2022, Price: 42990, Mileage: 8900,
		FuelType: "Electric", Transmission: "Automatic", Condition: dal.ConditionUsed}
	modelY = dal.Car{ID: "car-5", Make: "Tesla", Model: "Model Y", Year: 2023, Price: 52990,
		FuelType: "Electric", Transmission: "Automatic", Condition: dal.ConditionNew}
	civic = dal.Car{ID: "car-9", Make: "Honda", Model: "Civic", Year: 2014, Price: 11900, Mileage: 96400,
		FuelType: "Gasoline", Transmission: "Manual", Condition: dal.ConditionUsed}
)

func specByName(t *testing.T, specs []Spec, name string) Spec {
	t.Helper()
	for _, s := range specs {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no %q row", name)
	return Spec{}
}

func TestCompareSingleCarHasNoWinners(t *testing.T) {
	specs, err := Compare([]dal.Car{camry})
	require.NoError(t, err)
	require.Len(t, specs, 6)

	for _, s := range specs {
		assert.Len(t, s.Values, 1, s.Name)
		assert.Equal(t, NoWinner, s.Winner, s.Name)
	}
	assert.Equal(t, Number(24500), specByName(t, specs, AttrPrice).Values[0])
}

func TestCompareUsedCamryAgainstNewAccord(t *testing.T) {
	specs, err := Compare([]dal.Car{camry, accord})
	require.NoError(t, err)

	assert.True(t, specByName(t, specs, AttrMileage).Winner.Is(1))
	assert.True(t, specByName(t, specs, AttrCondition).Winner.Is(1))
	assert.True(t, specByName(t, specs, AttrPrice).Winner.Is(0), "price is purely numeric")
	assert.True(t, specByName(t, specs, AttrYear).Winner.Is(1))
	assert.Equal(t, NoWinner, specByName(t, specs, AttrFuelType).Winner)
	assert.Equal(t, NoWinner, specByName(t, specs, AttrTransmission).Winner)

	mileage := specByName(t, specs, AttrMileage)
	assert.Equal(t, []Value{Number(12500), Text("New")}, mileage.Values)
	assert.Equal(t, []Value{Text("Used"), Text("New")}, specByName(t, specs, AttrCondition).Values)
}

func TestCompareNewAlwaysWinsMileageAndCondition(t *testing.T) {
	used := []dal.Car{camry, model3, civic}
	for _, u := range used {
		for _, pair := range [][]dal.Car{{u, accord}, {accord, u}} {
			specs, err := Compare(pair)
			require.NoError(t, err)
			newIdx := 0
			if pair[1].IsNew() {
				newIdx = 1
			}
			assert.True(t, specByName(t, specs, AttrMileage).Winner.Is(newIdx), u.ID)
			assert.True(t, specByName(t, specs, AttrCondition).Winner.Is(newIdx), u.ID)
		}
	}
}

func TestCompareUsedOnly(t *testing.T) {
	specs, err := Compare([]dal.Car{civic, camry, model3})
	require.NoError(t, err)

	assert.True(t, specByName(t, specs, AttrPrice).Winner.Is(0))
	assert.True(t, specByName(t, specs, AttrYear).Winner.Is(2))
	assert.True(t, specByName(t, specs, AttrMileage).Winner.Is(2))
	assert.Equal(t, NoWinner, specByName(t, specs, AttrCondition).Winner, "no best used car")
}

func TestCompareSeveralNewCars(t *testing.T) {
	demo := accord
	demo.ID, demo.Mileage = "demo", 40
	lowMiles := accord
	lowMiles.ID, lowMiles.Mileage = "low-miles", 15

	specs, err := Compare([]dal.Car{camry, demo, lowMiles})
	require.NoError(t, err)
	assert.True(t, specByName(t, specs, AttrMileage).Winner.Is(2), "lowest mileage among new cars")
	assert.True(t, specByName(t, specs, AttrCondition).Winner.Is(1), "first new car")

	specs, err = Compare([]dal.Car{camry, accord, modelY})
	require.NoError(t, err)
	assert.Equal(t, NoWinner, specByName(t, specs, AttrMileage).Winner, "new cars tie on mileage")
	assert.True(t, specByName(t, specs, AttrCondition).Winner.Is(1))
	assert.Equal(t, NoWinner, specByName(t, specs, AttrYear).Winner, "two 2023 cars tie")
}

func TestCompareTiesHaveNoWinner(t *testing.T) {
	twin := camry
	twin.ID = "twin"

	specs, err := Compare([]dal.Car{camry, twin})
	require.NoError(t, err)
	for _, s := range specs {
		assert.Equal(t, NoWinner, s.Winner, s.Name)
	}

	cheaper := twin
	cheaper.Price = 100
	specs, err = Compare([]dal.Car{camry, twin, cheaper})
	require.NoError(t, err)
	assert.True(t, specByName(t, specs, AttrPrice).Winner.Is(2), "a tie for second place does not matter")
}

func TestCompareWinnerAtIndexZero(t *testing.T) {
	specs, err := Compare([]dal.Car{civic, modelY})
	require.NoError(t, err)

	price := specByName(t, specs, AttrPrice)
	idx, ok := price.Winner.Index()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.NotEqual(t, NoWinner, price.Winner)
}

func TestCompareSelectionSize(t *testing.T) {
	_, err := Compare(nil)
	assert.ErrorIs(t, err, ErrSelectionSize)

	_, err = Compare([]dal.Car{camry, accord, model3, modelY, civic})
	assert.ErrorIs(t, err, ErrSelectionSize)

	specs, err := Compare([]dal.Car{camry, accord, model3, modelY})
	require.NoError(t, err)
	assert.True(t, specByName(t, specs, AttrPrice).Winner.Is(0))
	assert.Equal(t, NoWinner, specByName(t, specs, AttrMileage).Winner, "accord and model Y are both new with zero miles")
	assert.True(t, specByName(t, specs, AttrCondition).Winner.Is(1))
}

func TestCompareJSON(t *testing.T) {
	specs, err := Compare([]dal.Car{camry, accord})
	require.NoError(t, err)

	b, err := json.Marshal(specs[2])
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Mileage","values":[12500,"New"],"winner":1}`, string(b))

	b, err = json.Marshal(specs[3])
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Fuel Type","values":["Gasoline","Gasoline"],"winner":null}`, string(b))

	b, err = json.Marshal(Spec{Name: "Trim", Values: []Value{Null(), Text("LX")}, Winner: WinnerAt(0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Trim","values":[null,"LX"],"winner":0}`, string(b))
}

func TestRegistryCustomAttribute(t *testing.T) {
	r := NewRegistry(DefaultAttributes()...)
	r.Register(Attribute{
		Name:  "Featured",
		Rule:  RuleNone,
		Value: func(c dal.Car) Value { return Text(map[bool]string{true: "yes", false: "no"}[c.Featured]) },
	})
	r.Register(Attribute{
		Name:  AttrPrice,
		Rule:  RuleMax,
		Value: func(c dal.Car) Value { return Number(c.Price) },
		Key:   func(c dal.Car) int { return c.Price },
	})

	assert.Equal(t, []string{AttrPrice, AttrYear, AttrMileage, AttrFuelType, AttrTransmission, AttrCondition, "Featured"}, r.Names())

	specs, err := r.Compare([]dal.Car{camry, accord})
	require.NoError(t, err)
	assert.True(t, specByName(t, specs, AttrPrice).Winner.Is(1), "replaced rule picks the highest price")
	assert.Equal(t, NoWinner, specByName(t, specs, "Featured").Winner)
}
