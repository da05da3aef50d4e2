// pkg/registry/schema.go
package registry

// DimensionRegistry is an externally supplied scoring dimension library,
// loaded from JSON to override the built-in one.
type DimensionRegistry struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	Dimensions  []Dimension `json:"dimensions"`
}

// Dimension describes one scoring dimension of the matching engine.
type Dimension struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Definition string   `json:"definition"`
	SeedSkills []string `json:"seedSkills"`
}
