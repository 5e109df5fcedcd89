package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

//go:embed default.hcl
var defaultHCL []byte

// Config holds all configuration
type Config struct {
	Variables []Variable
	Models    []Model
	Agent     AgentSettings
	Monday    Monday
	Server    Server
	Logging   Logging

	// ResolvedVars holds the resolved variable values for runtime use
	ResolvedVars map[string]cty.Value
}

func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}

// LoadAndValidate loads the config and validates all components
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the built-in configuration: Groq with credentials and
// board ids taken from the environment.
func Default() (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(defaultHCL, "default.hcl")
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse default config: %w", diags)
	}
	return loadFromHCLFiles([]*hcl.File{file}, []string{"default.hcl"})
}

// LoadOrDefault loads path when it exists and falls back to Default when
// path is empty or missing.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return LoadAndValidate(path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all config components are valid
func (c *Config) Validate() error {
	for _, m := range c.Models {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("model '%s': %w", m.Name, err)
		}
	}

	for _, v := range c.Variables {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("variable '%s': %w", v.Name, err)
		}
	}

	if err := c.Agent.Validate(c.Models); err != nil {
		return err
	}
	if err := c.Monday.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// ResolveModel returns the model block the agent refers to
func (c *Config) ResolveModel() (*Model, error) {
	for i := range c.Models {
		if c.Models[i].Name == c.Agent.Model {
			return &c.Models[i], nil
		}
	}
	return nil, fmt.Errorf("model '%s' not found", c.Agent.Model)
}

// Warnings lists settings that are empty but needed to answer questions.
// They are reported by the environment variable that would supply them.
func (c *Config) Warnings() []string {
	var missing []string
	check := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	check("MONDAY_API_TOKEN", c.Monday.APIToken)
	if m, err := c.ResolveModel(); err == nil {
		check(fmt.Sprintf("%s_API_KEY", providerEnvPrefix(m.Provider)), m.APIKey)
	}
	check("DEALS_BOARD_ID", c.Monday.DealsBoardID)
	check("WORK_ORDERS_BOARD_ID", c.Monday.WorkOrdersBoardID)
	return missing
}

func providerEnvPrefix(p Provider) string {
	switch p {
	case ProviderGroq:
		return "GROQ"
	case ProviderAnthropic:
		return "ANTHROPIC"
	case ProviderGemini:
		return "GEMINI"
	default:
		return "OPENAI"
	}
}

func LoadFile(filename string) (*Config, error) {
	return loadFromFiles([]string{filename})
}

func LoadDir(dir string) (*Config, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.hcl"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files in %s", dir)
	}
	return loadFromFiles(files)
}

// parsedBlocks holds all blocks extracted from a file in one pass
type parsedBlocks struct {
	Variables []*hcl.Block
	Models    []*hcl.Block
	Settings  []*hcl.Block
}

// settingsBlocks are the unlabeled blocks that may appear at most once
var settingsBlocks = []string{"agent", "monday", "server", "logging"}

func loadFromFiles(files []string) (*Config, error) {
	parser := hclparse.NewParser()
	var parsed []*hcl.File

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("[1] parse %s: %w", file, diags)
		}
		parsed = append(parsed, hclFile)
	}
	return loadFromHCLFiles(parsed, files)
}

// loadFromHCLFiles implements staged loading: variables → models → settings
func loadFromHCLFiles(files []*hcl.File, names []string) (*Config, error) {
	schema := &hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "variable", LabelNames: []string{"name"}},
			{Type: "model", LabelNames: []string{"name"}},
		},
	}
	for _, name := range settingsBlocks {
		schema.Blocks = append(schema.Blocks, hcl.BlockHeaderSchema{Type: name})
	}

	var pb parsedBlocks
	for i, hclFile := range files {
		// Extract all known block types in one PartialContent call
		content, _, diags := hclFile.Body.PartialContent(schema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("[2] partial content %s: %w", names[i], diags)
		}

		for _, block := range content.Blocks {
			switch block.Type {
			case "variable":
				pb.Variables = append(pb.Variables, block)
			case "model":
				pb.Models = append(pb.Models, block)
			default:
				pb.Settings = append(pb.Settings, block)
			}
		}
	}

	// Stage 1: Load variables (no context needed)
	var allVars []Variable
	for _, block := range pb.Variables {
		var v Variable
		v.Name = block.Labels[0]
		diags := gohcl.DecodeBody(block.Body, nil, &v)
		if diags.HasErrors() {
			return nil, fmt.Errorf("[3] decode variable %s: %w", v.Name, diags)
		}
		allVars = append(allVars, v)
	}

	// Build vars context
	varsCtx, resolvedVars, err := buildVarsContext(allVars)
	if err != nil {
		return nil, err
	}

	// Stage 2: Load models (with vars context)
	var allModels []Model
	for _, block := range pb.Models {
		var m Model
		m.Name = block.Labels[0]
		diags := gohcl.DecodeBody(block.Body, varsCtx, &m)
		if diags.HasErrors() {
			return nil, fmt.Errorf("[4] decode model %s: %w", m.Name, diags)
		}
		allModels = append(allModels, m)
	}

	// Build models context (add to vars context)
	modelsCtx := buildModelsContext(varsCtx, allModels)

	// Stage 3: Load settings blocks (with vars + models context)
	cfg := &Config{
		Variables:    allVars,
		Models:       allModels,
		ResolvedVars: resolvedVars,
	}
	seen := make(map[string]bool)
	for _, block := range pb.Settings {
		if seen[block.Type] {
			return nil, fmt.Errorf("duplicate %s block at %s", block.Type, block.DefRange)
		}
		seen[block.Type] = true

		var target any
		switch block.Type {
		case "agent":
			target = &cfg.Agent
		case "monday":
			target = &cfg.Monday
		case "server":
			target = &cfg.Server
		case "logging":
			target = &cfg.Logging
		}
		if diags := gohcl.DecodeBody(block.Body, modelsCtx, target); diags.HasErrors() {
			return nil, fmt.Errorf("[5] decode %s: %w", block.Type, diags)
		}
	}

	cfg.Agent.Defaults()
	cfg.Monday.Defaults()
	cfg.Server.Defaults()
	cfg.Logging.Defaults()
	if cfg.Agent.Model == "" && len(allModels) == 1 {
		cfg.Agent.Model = allModels[0].Name
	}
	return cfg, nil
}

func buildVarsContext(vars []Variable) (*hcl.EvalContext, map[string]cty.Value, error) {
	varsMap := make(map[string]cty.Value)
	for i := range vars {
		value, err := ResolveVariableValue(&vars[i])
		if err != nil {
			return nil, nil, fmt.Errorf("resolve variable %s: %w", vars[i].Name, err)
		}
		varsMap[vars[i].Name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"vars": cty.ObjectVal(varsMap),
		},
	}, varsMap, nil
}

// buildModelsContext adds models to existing context, so `models.<name>`
// resolves to the model block's label
func buildModelsContext(ctx *hcl.EvalContext, models []Model) *hcl.EvalContext {
	modelsMap := make(map[string]cty.Value)
	for _, m := range models {
		modelsMap[m.Name] = cty.StringVal(m.Name)
	}

	// Copy existing vars and add models
	newVars := make(map[string]cty.Value)
	for k, v := range ctx.Variables {
		newVars[k] = v
	}
	newVars["models"] = cty.ObjectVal(modelsMap)

	return &hcl.EvalContext{
		Variables: newVars,
	}
}
