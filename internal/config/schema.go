package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// SchemaJSON returns the JSON schema of the Config struct, pretty
// printed. Backs the `skiff config schema` command.
func SchemaJSON() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/skiff-browser/skiff/config.schema.json"
	schema.Title = "Skiff Configuration"
	schema.Description = "Configuration schema for skiff, a multi-engine browser shell"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// GenerateSchemaFile writes the JSON schema next to the config file so
// editors can validate it.
func GenerateSchemaFile() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	data, err := SchemaJSON()
	if err != nil {
		return err
	}

	schemaFile := filepath.Join(configDir, "config.schema.json")
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}

	return nil
}
