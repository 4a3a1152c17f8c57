package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/skiff-browser/skiff/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show the effective configuration, its file path and its JSON schema.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after defaults, file and environment merged, as YAML.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runConfigPath,
}

var (
	configSchemaWrite bool

	configSchemaCmd = &cobra.Command{
		Use:   "schema",
		Short: "Print the configuration JSON schema",
		Long: `Print the JSON schema of the config file. With --write, put it next
to the config file so editors pick it up for validation.`,
		RunE: runConfigSchema,
	}
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSchemaCmd)

	configSchemaCmd.Flags().BoolVar(&configSchemaWrite, "write", false, "write the schema next to the config file")
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	data, err := yaml.Marshal(app.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	if flagConfig != "" {
		fmt.Println(flagConfig)
		return nil
	}
	path, err := config.GetConfigFile()
	if err != nil {
		return fmt.Errorf("resolve config file: %w", err)
	}
	fmt.Println(path)
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	if configSchemaWrite {
		if err := config.GenerateSchemaFile(); err != nil {
			return err
		}
		if dir, err := config.GetConfigDir(); err == nil {
			fmt.Println("Wrote", filepath.Join(dir, "config.schema.json"))
		}
		return nil
	}

	data, err := config.SchemaJSON()
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
