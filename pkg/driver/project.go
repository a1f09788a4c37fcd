package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/mtaka/STN-Core/pkg/export"
	"github.com/mtaka/STN-Core/pkg/report"
)

// ProjectFileNames lists the manifest names FindProject looks for, in order.
var ProjectFileNames = []string{"stn.yml", "stn.yaml", "stn.toml"}

// ErrProjectNotFound is returned when no manifest exists in a directory or
// any of its parents.
var ErrProjectNotFound = errors.New("project: no stn.yml, stn.yaml or stn.toml found")

// Project is a validated stn project manifest.
type Project struct {
	Path     string
	Root     string
	Name     string
	LogLevel string
	Inputs   []string
	// Data maps a _DATA section name to the file holding its text.
	Data   map[string]string
	Output OutputSpec
}

// OutputSpec selects where and how a build writes its document.
type OutputSpec struct {
	Format export.Format
	// Path is relative to the project root; empty writes to stdout.
	Path string
}

type projectFile struct {
	Name     string            `yaml:"name" toml:"name"`
	LogLevel string            `yaml:"loglevel" toml:"loglevel"`
	Inputs   []string          `yaml:"inputs" toml:"inputs"`
	Data     map[string]string `yaml:"data" toml:"data"`
	Output   outputFile        `yaml:"output" toml:"output"`
}

type outputFile struct {
	Format string `yaml:"format" toml:"format"`
	Path   string `yaml:"path" toml:"path"`
}

var (
	projectKeys = []string{"name", "loglevel", "inputs", "data", "output"}
	outputKeys  = []string{"format", "path"}
)

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "project: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("project validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadProject parses a stn.yml or stn.toml manifest, returning a validated
// project.
func LoadProject(path string) (*Project, error) {
	if path == "" {
		return nil, fmt.Errorf("project: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("project: resolve %s: %w", path, err)
	}
	buf, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("project: open %s: %w", absPath, err)
	}

	var raw projectFile
	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".toml":
		err = decodeTOML(buf, &raw)
	default:
		err = decodeYAML(buf, &raw)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("project: %s is empty", absPath)
		}
		return nil, fmt.Errorf("project: parse %s: %w", absPath, err)
	}

	project := raw.toProject(absPath)
	if err := project.validate(raw); err != nil {
		return nil, err
	}
	return project, nil
}

func decodeYAML(buf []byte, raw *projectFile) error {
	decoder := yaml.NewDecoder(bytes.NewReader(buf))
	decoder.KnownFields(true)
	return decoder.Decode(raw)
}

func decodeTOML(buf []byte, raw *projectFile) error {
	if len(bytes.TrimSpace(buf)) == 0 {
		return io.EOF
	}
	tree, err := toml.LoadBytes(buf)
	if err != nil {
		return err
	}
	if err := checkKeys("", tree.Keys(), projectKeys); err != nil {
		return err
	}
	if sub, ok := tree.Get("output").(*toml.Tree); ok {
		if err := checkKeys("output.", sub.Keys(), outputKeys); err != nil {
			return err
		}
	}
	return tree.Unmarshal(raw)
}

func checkKeys(prefix string, keys, known []string) error {
	var unknown []string
	for _, key := range keys {
		found := false
		for _, candidate := range known {
			if key == candidate {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, prefix+key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("unknown field(s) %s", strings.Join(unknown, ", "))
}

func (raw projectFile) toProject(path string) *Project {
	project := &Project{
		Path:     path,
		Root:     filepath.Dir(path),
		Name:     strings.TrimSpace(raw.Name),
		LogLevel: strings.TrimSpace(raw.LogLevel),
		Inputs:   append([]string(nil), raw.Inputs...),
		Data:     make(map[string]string, len(raw.Data)),
	}
	for section, file := range raw.Data {
		project.Data[section] = file
	}
	project.Output.Path = strings.TrimSpace(raw.Output.Path)
	if format, err := export.ParseFormat(raw.Output.Format); err == nil {
		project.Output.Format = format
	}
	return project
}

func (p *Project) validate(raw projectFile) error {
	var errs ValidationError
	if p.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if p.LogLevel != "" {
		if _, err := report.ParseLevel(p.LogLevel); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("loglevel %q must be one of %s", p.LogLevel, strings.Join(report.LevelNames, ", ")))
		}
	}
	if len(p.Inputs) == 0 {
		errs.Issues = append(errs.Issues, "inputs must list at least one tree file")
	}
	for i, input := range p.Inputs {
		if strings.TrimSpace(input) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("inputs[%d] must be a non-empty path", i))
		}
	}
	for _, section := range sortedSections(p.Data) {
		if section == "" {
			errs.Issues = append(errs.Issues, "data must not use empty section names")
		} else if strings.TrimSpace(p.Data[section]) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("data.%s must name a file", section))
		}
	}
	if _, err := export.ParseFormat(raw.Output.Format); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("output.format %q must be text, yaml or json", raw.Output.Format))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// FindProject walks from dir towards the filesystem root and returns the
// first manifest it finds.
func FindProject(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("project: resolve %s: %w", dir, err)
	}
	for {
		for _, name := range ProjectFileNames {
			candidate := filepath.Join(absDir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", ErrProjectNotFound
		}
		absDir = parent
	}
}

// Resolve returns path relative to the project root unless it is absolute.
func (p *Project) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}

func sortedSections(data map[string]string) []string {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
