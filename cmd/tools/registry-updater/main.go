// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"flag"

	"talenthub/pkg/registry"
)

var registryPath string

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Add command flags
	idAdd := addCmd.String("id", "", "Dimension ID (e.g., cloud_platforms)")
	label := addCmd.String("label", "", "Display label (e.g., Cloud Platforms)")
	definition := addCmd.String("definition", "", "Short definition of what the dimension measures")
	seedSkills := addCmd.String("seedSkills", "", "Comma-separated seed skill list")
	addCmd.StringVar(&registryPath, "path", "configs/dimension-registry.json", "Path to registry file")

	// Update command flags
	idUpdate := updateCmd.String("id", "", "Dimension ID to update")
	field := updateCmd.String("field", "", "Field to update (label, definition, seedSkills)")
	value := updateCmd.String("value", "", "New value for the field")
	updateCmd.StringVar(&registryPath, "path", "configs/dimension-registry.json", "Path to registry file")

	// Validate command flags
	validateCmd.StringVar(&registryPath, "path", "configs/dimension-registry.json", "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *label == "" {
			fmt.Println("Error: id and label are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		dim := registry.Dimension{
			ID:         *idAdd,
			Label:      *label,
			Definition: *definition,
			SeedSkills: splitSkills(*seedSkills),
		}
		if err := addDimension(&dim); err != nil {
			fmt.Printf("Error adding dimension: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added dimension: %s\n", *idAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateDimension(*idUpdate, *field, *value); err != nil {
			fmt.Printf("Error updating dimension: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated dimension %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if _, err := registry.LoadRegistry(registryPath); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "help":
		fallthrough
	default:
		help()
	}
}

func splitSkills(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func addDimension(dim *registry.Dimension) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		// If file doesn't exist, create new registry
		if os.IsNotExist(err) {
			reg = &registry.DimensionRegistry{
				Version:    "1.0.0",
				Dimensions: []registry.Dimension{},
			}
		} else {
			return fmt.Errorf("failed to load registry: %w", err)
		}
	}

	for _, existing := range reg.Dimensions {
		if existing.ID == dim.ID {
			return fmt.Errorf("dimension with ID %s already exists", dim.ID)
		}
	}

	reg.Dimensions = append(reg.Dimensions, *dim)
	reg.LastUpdated = time.Now().Format(time.RFC3339)

	return saveRegistry(reg, registryPath)
}

func updateDimension(id, field, value string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	found := false
	for i := range reg.Dimensions {
		if reg.Dimensions[i].ID == id {
			found = true
			switch field {
			case "label":
				reg.Dimensions[i].Label = value
			case "definition":
				reg.Dimensions[i].Definition = value
			case "seedSkills":
				reg.Dimensions[i].SeedSkills = splitSkills(value)
			default:
				return fmt.Errorf("unknown field: %s", field)
			}
			break
		}
	}
	if !found {
		return fmt.Errorf("dimension with ID %s not found", id)
	}

	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return saveRegistry(reg, registryPath)
}

func saveRegistry(reg *registry.DimensionRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create registry directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func help() {
	fmt.Println(`registry-updater maintains the scoring dimension registry.

Usage:
  registry-updater add -id <id> -label <label> [-definition <text>] [-seedSkills <a,b,c>] [-path <file>]
  registry-updater update -id <id> -field <label|definition|seedSkills> -value <value> [-path <file>]
  registry-updater validate [-path <file>]`)
}
