package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/fetchkit/internal/container"
)

// Config represents a preset file.
type Config struct {
	Variables map[string]string `yaml:"variables,omitempty" json:"variables,omitempty"`
	Presets   map[string]Preset `yaml:"presets" json:"presets"`
}

// Preset is a named base container, optionally layered on another preset.
type Preset struct {
	Extends string        `yaml:"extends,omitempty" json:"extends,omitempty"`
	URL     string        `yaml:"url,omitempty" json:"url,omitempty"`
	Init    InitConfig    `yaml:"init,omitempty" json:"init,omitempty"`
	Options OptionsConfig `yaml:"options,omitempty" json:"options,omitempty"`
}

// InitConfig holds transport settings of a preset.
type InitConfig struct {
	Method      string            `yaml:"method,omitempty" json:"method,omitempty"`
	Headers     map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
	Body        any               `yaml:"body,omitempty" json:"body,omitempty"`
	Credentials string            `yaml:"credentials,omitempty" json:"credentials,omitempty"`
}

// OptionsConfig holds behavior settings of a preset.
type OptionsConfig struct {
	ResolveAs string      `yaml:"resolveAs,omitempty" json:"resolveAs,omitempty"`
	PayloadAs string      `yaml:"payloadAs,omitempty" json:"payloadAs,omitempty"`
	Query     QueryConfig `yaml:"query,omitempty" json:"query,omitempty"`
}

// PayloadJSON selects container.JSONPayload as the payload transform.
const PayloadJSON = "json"

// QueryConfig is a query mapping that keeps document order.
type QueryConfig container.Query

// UnmarshalYAML reads a mapping node pair by pair so the order survives.
func (q *QueryConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: query must be a mapping", node.Line)
	}
	out := make(QueryConfig, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return err
		}
		out = append(out, container.Param{Key: key, Value: value})
	}
	*q = out
	return nil
}

// LoadConfig reads, parses and validates a preset file. JSON files are read
// with the YAML decoder, which accepts JSON and keeps mapping order.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", filepath.Base(path), err)
	}

	if errs := ValidateConfig(config); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return nil, fmt.Errorf("invalid config file: %w", errors.Join(joined...))
	}

	return config, nil
}

// ParseConfig decodes YAML or JSON preset data.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	if config.Presets == nil {
		config.Presets = make(map[string]Preset)
	}
	return &config, nil
}

// Names returns the preset names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain returns the extends chain of name, root first.
func (c *Config) Chain(name string) ([]string, error) {
	var chain []string
	seen := make(map[string]bool)
	for current := name; current != ""; {
		if seen[current] {
			return nil, fmt.Errorf("preset %q: extends cycle through %q", name, current)
		}
		seen[current] = true

		p, ok := c.Presets[current]
		if !ok {
			return nil, fmt.Errorf("preset not found: %s", current)
		}
		chain = append(chain, current)
		current = p.Extends
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// Container resolves preset name into a Container: the extends chain is
// merged root first, then {{variables}} are substituted using the file's
// variables overridden by vars.
func (c *Config) Container(name string, vars map[string]string) (container.Container, error) {
	chain, err := c.Chain(name)
	if err != nil {
		return container.Container{}, err
	}

	layers := make([]container.Container, 0, len(chain))
	for _, n := range chain {
		layers = append(layers, c.Presets[n].Container())
	}
	merged := container.MergeAll(layers...)

	return Substitute(merged, MergeVariables(c.Variables, vars)), nil
}

// Container converts a single preset, without its parents. Only the
// settings present in the preset are set, so merging does not clear values
// inherited from a parent.
func (p Preset) Container() container.Container {
	init := container.Init{}
	if p.Init.Method != "" {
		init[container.InitMethod] = strings.ToUpper(p.Init.Method)
	}
	if p.Init.Headers != nil {
		init[container.InitHeaders] = p.Init.Headers
	}
	if p.Init.Body != nil {
		init[container.InitBody] = p.Init.Body
	}
	if p.Init.Credentials != "" {
		init[container.InitCredentials] = p.Init.Credentials
	}

	options := container.Options{}
	if p.Options.ResolveAs != "" {
		options[container.OptionResolveAs] = p.Options.ResolveAs
	}
	if p.Options.PayloadAs == PayloadJSON {
		options[container.OptionPayloadAs] = container.PayloadFunc(container.JSONPayload)
	}
	if p.Options.Query != nil {
		options[container.OptionQuery] = container.Query(p.Options.Query)
	}

	return container.New(p.URL, init, options)
}

// Substitute replaces {{name}} placeholders in the URL, header values and
// string query values of c.
func Substitute(c container.Container, vars map[string]string) container.Container {
	if len(vars) == 0 {
		return c
	}

	out := c.Clone()
	out.URL = ProcessVariables(c.URL, vars)

	if headers, ok := c.Init[container.InitHeaders].(map[string]string); ok {
		out.Init[container.InitHeaders] = ProcessVariablesInMap(headers, vars)
	}

	if q := c.Query(); q != nil {
		replaced := make(container.Query, len(q))
		for i, p := range q {
			if s, ok := p.Value.(string); ok {
				p.Value = ProcessVariables(s, vars)
			}
			replaced[i] = p
		}
		out.Options[container.OptionQuery] = replaced
	}

	return out
}

// ProcessVariables replaces {{key}} with its value for every variable.
func ProcessVariables(input string, vars map[string]string) string {
	result := input
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

// ProcessVariablesInMap applies ProcessVariables to every value of input.
func ProcessVariablesInMap(input map[string]string, vars map[string]string) map[string]string {
	result := make(map[string]string, len(input))
	for key, value := range input {
		result[key] = ProcessVariables(value, vars)
	}
	return result
}

// MergeVariables merges two variable sets, with the second taking precedence
func MergeVariables(base, override map[string]string) map[string]string {
	result := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		result[key] = value
	}
	for key, value := range override {
		result[key] = value
	}
	return result
}

// ParseVariables parses "key=value" pairs.
func ParseVariables(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid variable %q, expected key=value", pair)
		}
		vars[key] = value
	}
	return vars, nil
}
