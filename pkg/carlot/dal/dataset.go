package dal

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogRawData []byte

// datasetFile is the top-level structure of the catalog YAML.
type datasetFile struct {
	Vocabulary []MakeModels `yaml:"vocabulary"`
	Cars       []Car        `yaml:"cars"`
}

// Dataset is a parsed inventory together with its make/model vocabulary.
type Dataset struct {
	Cars       []Car
	Vocabulary *Vocabulary
}

var (
	defaultOnce    sync.Once
	defaultDataset *Dataset
	defaultErr     error
)

// CarsDataset returns the embedded seed dataset, parsed on first access.
func CarsDataset() (*Dataset, error) {
	defaultOnce.Do(func() {
		defaultDataset, defaultErr = ParseDataset(catalogRawData)
	})
	return defaultDataset, defaultErr
}

// ParseDataset decodes a catalog YAML document and validates every listing.
func ParseDataset(data []byte) (*Dataset, error) {
	var f datasetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Cars))
	for i := range f.Cars {
		car := f.Cars[i]
		if car.ID == "" {
			return nil, fmt.Errorf("catalog: car at index %d has no id", i)
		}
		if _, dup := seen[car.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate car id %q", car.ID)
		}
		seen[car.ID] = struct{}{}
		if car.Price < 0 || car.Mileage < 0 {
			return nil, fmt.Errorf("catalog: car %q has a negative price or mileage", car.ID)
		}
		if car.Condition == "" {
			return nil, fmt.Errorf("catalog: car %q has no condition", car.ID)
		}
	}

	return &Dataset{
		Cars:       f.Cars,
		Vocabulary: NewVocabulary(f.Vocabulary),
	}, nil
}
