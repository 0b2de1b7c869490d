package search

import "github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"

// sampleCars mirrors a slice of the seed catalog.
func sampleCars() []dal.Car {
	return []dal.Car{
		{ID: "car-1", Make: "Toyota", Model: "Camry", Year: 2021, Price: 24500, Mileage: 12500, FuelType: "Gasoline", Transmission: "Automatic", Condition: dal.ConditionUsed, Featured: true, Category: "Sedan"},
		{ID: "car-2", Make: "Honda", Model: "Accord", Year: 2023, Price: 28900, FuelType: "Gasoline", Transmission: "Automatic", Condition: dal.ConditionNew, Featured: true, Category: "Sedan"},
		{ID: "car-3", Make: "Tesla", Model: "Model 3", Year: 2022, Price: 42990, Mileage: 8900, FuelType: "Electric", Transmission: "Automatic", Condition: dal.ConditionUsed, Featured: true, Category: "Sedan"},
		{ID: "car-4", Make: "Ford", Model: "F-150", Year: 2020, Price: 35750, Mileage: 34200, FuelType: "Gasoline", Transmission: "Automatic", Condition: dal.ConditionUsed, Category: "Truck"},
		{ID: "car-5", Make: "Tesla", Model: "Model Y", Year: 2023, Price: 52990, FuelType: "Electric", Transmission: "Automatic", Condition: dal.ConditionNew, Featured: true, Category: "SUV"},
		{ID: "car-8", Make: "Ford", Model: "Mustang", Year: 2018, Price: 27400, Mileage: 38900, FuelType: "Gasoline", Transmission: "Manual", Condition: dal.ConditionUsed, Category: "Coupe"},
		{ID: "car-9", Make: "Honda", Model: "Civic", Year: 2014, Price: 11900, Mileage: 96400, FuelType: "Gasoline", Transmission: "Manual", Condition: dal.ConditionUsed, Category: "Sedan"},
	}
}

func ids(cars []dal.Car) []string {
	out := make([]string, len(cars))
	for i, c := range cars {
		out[i] = c.ID
	}
	return out
}
