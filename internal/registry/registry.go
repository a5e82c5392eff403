package registry

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultPortfolio []byte

// ClearCommand is handled by the terminal itself and may not be registered.
const ClearCommand = "clear"

// Lines is a response written in YAML either as one string or as a list of lines.
type Lines []string

func (l *Lines) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*l = Lines{value.Value}
		return nil
	case yaml.SequenceNode:
		var lines []string
		if err := value.Decode(&lines); err != nil {
			return err
		}
		*l = lines
		return nil
	}
	return fmt.Errorf("line %d: response must be a string or a list of strings", value.Line)
}

// Text joins the lines with newlines.
func (l Lines) Text() string {
	return strings.Join(l, "\n")
}

type Command struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Response    Lines  `yaml:"response"`
}

// Owner describes whose portfolio this is.
type Owner struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	User     string `yaml:"user"`
	Host     string `yaml:"host"`
	Timezone string `yaml:"timezone"`
}

// Prompt is the shell prompt shown before every command line.
func (o Owner) Prompt() string {
	return fmt.Sprintf("%s@%s:~$", o.User, o.Host)
}

// Portfolio is the static data the terminal and the chat endpoint are built from.
type Portfolio struct {
	Owner    Owner     `yaml:"owner"`
	Welcome  Lines     `yaml:"welcome"`
	Facts    []string  `yaml:"facts"`
	Commands []Command `yaml:"commands"`
}

// Default returns the portfolio compiled into the binary.
func Default() (*Portfolio, error) {
	return Parse(defaultPortfolio)
}

// LoadFile reads a portfolio from a YAML file.
func LoadFile(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio: %w", err)
	}
	if p.Owner.User == "" {
		p.Owner.User = "guest"
	}
	if p.Owner.Host == "" {
		p.Owner.Host = "portfolio"
	}
	return &p, nil
}

// Registry is a read-only lookup over the portfolio commands.
type Registry struct {
	commands []Command
	byName   map[string]int
}

// New validates the commands and indexes them by normalized name.
func New(commands []Command) (*Registry, error) {
	r := &Registry{
		commands: make([]Command, 0, len(commands)),
		byName:   make(map[string]int, len(commands)),
	}
	for _, cmd := range commands {
		cmd.Name = Normalize(cmd.Name)
		if cmd.Name == "" {
			return nil, fmt.Errorf("command with empty name")
		}
		if cmd.Name == ClearCommand {
			return nil, fmt.Errorf("command %q is reserved", ClearCommand)
		}
		if _, exists := r.byName[cmd.Name]; exists {
			return nil, fmt.Errorf("duplicate command %q", cmd.Name)
		}
		r.byName[cmd.Name] = len(r.commands)
		r.commands = append(r.commands, cmd)
	}
	return r, nil
}

// Normalize trims surrounding whitespace and lowercases.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Lookup finds a command by exact name after normalization.
func (r *Registry) Lookup(name string) (Command, bool) {
	i, ok := r.byName[Normalize(name)]
	if !ok {
		return Command{}, false
	}
	return r.commands[i], true
}

// Names returns command names in registration order followed by ClearCommand.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands)+1)
	for _, cmd := range r.commands {
		names = append(names, cmd.Name)
	}
	return append(names, ClearCommand)
}

func (r *Registry) Commands() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Complete returns the only name in Names starting with prefix. Empty prefixes and
// ambiguous or unknown prefixes report false.
func (r *Registry) Complete(prefix string) (string, bool) {
	if prefix == "" {
		return "", false
	}
	prefix = strings.ToLower(prefix)
	match := ""
	for _, name := range r.Names() {
		if strings.HasPrefix(name, prefix) {
			if match != "" {
				return "", false
			}
			match = name
		}
	}
	return match, match != ""
}

// commandSource adapts the registry to fuzzy.Source, matching name and description.
type commandSource []Command

func (s commandSource) String(i int) string {
	return s[i].Name + " " + s[i].Description
}

func (s commandSource) Len() int {
	return len(s)
}

// Search ranks commands against a free-text query, best match first.
func (r *Registry) Search(query string) []Command {
	matches := fuzzy.FindFrom(query, commandSource(r.commands))
	out := make([]Command, 0, len(matches))
	for _, m := range matches {
		out = append(out, r.commands[m.Index])
	}
	return out
}
