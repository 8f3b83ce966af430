// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/ts2openapi/ts2openapi/internal/config"
)

var (
	initForce       bool
	initInteractive bool
	initTitle       string
	initVersion     string
	initDescription string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new ts2openapi configuration file",
	Long: `Initialize a new ts2openapi configuration file in the current directory.

This command creates ts2openapi.json (or ts2openapi.yaml with -f yaml)
with sensible defaults that you can customize for your project.

Features:
  - Reads name, version and description from package.json
  - Detects common source directories (src, routes, api, ...)
  - Sets up exclude patterns for node_modules and build output

Example:
  ts2openapi init                         # Create ts2openapi.json
  ts2openapi init -f yaml                 # Create ts2openapi.yaml
  ts2openapi init --force                 # Overwrite existing config
  ts2openapi init --interactive           # Interactive mode with prompts
  ts2openapi init --title "My API"        # Set custom API title`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "interactive mode with prompts")
	initCmd.Flags().StringVar(&initTitle, "title", "", "API title (apiName)")
	initCmd.Flags().StringVar(&initVersion, "version", "", "API version")
	initCmd.Flags().StringVar(&initDescription, "description", "", "API description")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := "ts2openapi.json"
	if format == "yaml" {
		configFile = "ts2openapi.yaml"
	}
	if cfgFile != "" {
		configFile = cfgFile
	}

	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	cfg := defaultConfig()

	info := detectProjectInfo(projectRoot)
	if info.Title != "" {
		cfg.APIName = info.Title
	}
	if info.Version != "" {
		cfg.Version = info.Version
	}
	cfg.Description = info.Description

	if initTitle != "" {
		cfg.APIName = initTitle
	}
	if initVersion != "" {
		cfg.Version = initVersion
	}
	if initDescription != "" {
		cfg.Description = initDescription
	}
	if format != "" {
		cfg.Format = format
		cfg.Output = "openapi." + format
	}
	if output != "" {
		cfg.Output = output
	}

	entryPoints := detectEntryPoints(projectRoot)
	cfg.PathList = entryPoints
	printVerbose("Detected source paths: %s", strings.Join(entryPoints, ", "))

	if initInteractive && isTerminal() {
		cfg, err = interactiveInit(cfg, os.Stdin, stdout)
		if err != nil {
			return fmt.Errorf("interactive init failed: %w", err)
		}
	}

	data, err := buildConfigFile(cfg, configFile)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("API: %s %s", cfg.APIName, cfg.Version)
	printVerbose("Output: %s", cfg.Output)

	return nil
}

// defaultConfig returns the configuration written by init before detection.
func defaultConfig() *config.Config {
	return &config.Config{
		PathList: []string{"."},
		APIName:  "API",
		Version:  "1.0.0",
		Output:   "openapi.json",
		Format:   config.DefaultFormat,
		Exclude:  []string{"node_modules/**", "**/*.d.ts", "dist/**", "build/**"},
		Watch:    config.WatchConfig{Debounce: config.DefaultDebounce},
		Serve:    config.ServeConfig{Address: config.DefaultAddress},
	}
}

// projectInfo holds information detected from the project.
type projectInfo struct {
	Name        string
	Title       string
	Version     string
	Description string
}

// detectProjectInfo detects project information from package.json.
func detectProjectInfo(projectRoot string) projectInfo {
	info := projectInfo{}

	data, err := os.ReadFile(filepath.Join(projectRoot, "package.json"))
	if err != nil {
		return info
	}

	var pkg struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return info
	}

	info.Name = pkg.Name
	info.Version = pkg.Version
	info.Description = pkg.Description

	if pkg.Name != "" {
		// "@scope/my-api" -> "My Api API"
		name := pkg.Name[strings.LastIndex(pkg.Name, "/")+1:]
		name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
		info.Title = cases.Title(language.English).String(name) + " API"
	}

	return info
}

// detectEntryPoints detects common source directories in the project.
func detectEntryPoints(projectRoot string) []string {
	var paths []string

	for _, p := range []string{"./src", "./routes", "./api", "./server", "./app", "./controllers"} {
		fullPath := filepath.Join(projectRoot, p)
		if stat, err := os.Stat(fullPath); err == nil && stat.IsDir() {
			paths = append(paths, p)
		}
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}

	return paths
}

// isTerminal checks if stdin is a terminal.
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// interactiveInit prompts for each value, keeping the current one on an
// empty answer.
func interactiveInit(cfg *config.Config, in io.Reader, out io.Writer) (*config.Config, error) {
	reader := bufio.NewReader(in)

	prompt := func(label string, current *string) error {
		fmt.Fprintf(out, "%s [%s]: ", label, *current)
		answer, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			*current = answer
		}
		return nil
	}

	paths := strings.Join(cfg.PathList, ",")

	for _, p := range []struct {
		label   string
		current *string
	}{
		{"API name", &cfg.APIName},
		{"API version", &cfg.Version},
		{"API description", &cfg.Description},
		{"Source paths (comma separated)", &paths},
		{"Output file", &cfg.Output},
		{"Output format (json/yaml)", &cfg.Format},
	} {
		if err := prompt(p.label, p.current); err != nil {
			return nil, err
		}
	}

	cfg.PathList = nil
	for _, p := range strings.Split(paths, ",") {
		if p = strings.TrimSpace(p); p != "" {
			cfg.PathList = append(cfg.PathList, p)
		}
	}

	return cfg, nil
}

// buildConfigFile renders cfg as JSON, or as YAML with a header comment
// when the file name ends in .yaml or .yml.
func buildConfigFile(cfg *config.Config, name string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".yaml" || ext == ".yml" {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		header := "# ts2openapi configuration file\n\n"
		return append([]byte(header), data...), nil
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return append(data, '\n'), nil
}
