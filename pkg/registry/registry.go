// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

func LoadRegistry(path string) (*DimensionRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg DimensionRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	if err := validate(&reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func validate(reg *DimensionRegistry) error {
	if len(reg.Dimensions) == 0 {
		return fmt.Errorf("registry has no dimensions")
	}
	seen := map[string]bool{}
	for _, dim := range reg.Dimensions {
		if dim.ID == "" {
			return fmt.Errorf("dimension with empty id")
		}
		if seen[dim.ID] {
			return fmt.Errorf("duplicate dimension id: %s", dim.ID)
		}
		seen[dim.ID] = true
	}
	return nil
}
