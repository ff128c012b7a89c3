package loaders

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/magicslate/slate/internal/models"
)

// LoadConcept reads a proposed-title concept from a YAML file.
func LoadConcept(path string) (models.NewTitleConcept, error) {
	var concept models.NewTitleConcept

	data, err := os.ReadFile(path)
	if err != nil {
		return concept, fmt.Errorf("failed to read concept file: %w", err)
	}
	if err := yaml.Unmarshal(data, &concept); err != nil {
		return concept, fmt.Errorf("failed to parse concept file %s: %w", path, err)
	}
	if err := validate.Struct(concept); err != nil {
		return concept, models.NewValidationError("concept", "", err.Error())
	}
	return concept, nil
}

// scenarioFile is the on-disk TOML layout for custom windowing scenarios.
type scenarioFile struct {
	Scenarios []models.WindowingScenario `toml:"scenarios"`
}

// LoadScenarios reads custom windowing scenarios from a TOML file. Each
// scenario is validated; a file with no scenarios is rejected.
func LoadScenarios(path string) ([]models.WindowingScenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var file scenarioFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	if len(file.Scenarios) == 0 {
		return nil, models.NewValidationError("scenario", "", "no scenarios defined")
	}

	for i, s := range file.Scenarios {
		if err := validate.Struct(s); err != nil {
			return nil, models.NewValidationError("scenario", fmt.Sprintf("scenarios[%d]", i), err.Error())
		}
	}
	return file.Scenarios, nil
}
