// Package driver loads stn projects and runs them through the evaluator.
package driver

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mtaka/STN-Core/pkg/export"
	"github.com/mtaka/STN-Core/pkg/interpreter"
	"github.com/mtaka/STN-Core/pkg/report"
	"github.com/mtaka/STN-Core/pkg/tree"
)

// LoadTree reads every input of the project in order and merges them into
// one tree. Data files override data sections carried by the inputs.
func (p *Project) LoadTree() (*tree.Tree, error) {
	merged := &tree.Tree{}
	for _, input := range p.Inputs {
		t, err := tree.LoadFile(p.Resolve(input))
		if err != nil {
			return nil, err
		}
		merged.Append(t)
	}
	if len(p.Data) == 0 {
		return merged, nil
	}
	if merged.Data == nil {
		merged.Data = make(map[string]string, len(p.Data))
	}
	for _, section := range sortedSections(p.Data) {
		path := p.Resolve(p.Data[section])
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("project: data %s: %w", section, err)
		}
		if _, ok := merged.Data[section]; ok {
			report.LogWarning("Data", fmt.Sprintf("data file %s overrides section %q from the inputs", p.Data[section], section))
		}
		merged.Data[section] = strings.TrimRight(string(buf), "\r\n")
	}
	return merged, nil
}

// Build loads, evaluates and exports the project. The document goes to the
// configured output path, or to stdout when none is set.
func Build(p *Project, stdout io.Writer) (*interpreter.Document, error) {
	report.LogBeginPhase("Loading")
	input, err := p.LoadTree()
	if err != nil {
		report.LogError("Input", err)
		return nil, err
	}
	report.LogEndPhase()
	report.LogInfo("Input", fmt.Sprintf("%d statements from %d inputs", len(input.Statements), len(p.Inputs)))

	report.LogBeginPhase("Evaluating")
	doc, err := interpreter.Evaluate(input)
	if err != nil {
		report.LogError("Evaluate", err)
		return nil, err
	}
	report.LogEndPhase()

	report.LogBeginPhase("Writing")
	var out bytes.Buffer
	if err := export.Write(&out, doc, p.Output.Format); err != nil {
		report.LogError("Output", err)
		return nil, err
	}
	if p.Output.Path == "" {
		report.LogEndPhase()
		if _, err := out.WriteTo(stdout); err != nil {
			return nil, err
		}
		return doc, nil
	}
	target := p.Resolve(p.Output.Path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		report.LogError("Output", err)
		return nil, err
	}
	if err := os.WriteFile(target, out.Bytes(), 0o644); err != nil {
		report.LogError("Output", err)
		return nil, fmt.Errorf("project: write %s: %w", target, err)
	}
	report.LogEndPhase()
	report.LogInfo("Output", "wrote "+target)
	return doc, nil
}
