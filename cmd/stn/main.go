package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"github.com/mtaka/STN-Core/pkg/driver"
	"github.com/mtaka/STN-Core/pkg/export"
	"github.com/mtaka/STN-Core/pkg/interpreter"
	"github.com/mtaka/STN-Core/pkg/report"
	"github.com/mtaka/STN-Core/pkg/runtime"
	"github.com/mtaka/STN-Core/pkg/tree"
)

const cliToolVersion = "stn 0.1.0-dev"

func main() {
	os.Exit(run(os.Args))
}

// run executes the command line; args includes the program name.
func run(args []string) int {
	cli := olive.NewCLI("stn", "stn evaluates structural tree notation documents", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the reporter log level", false, report.LevelNames)
	logLvlArg.SetDefaultValue("verbose")

	evalCmd := cli.AddSubcommand("eval", "evaluate a tree file and print its results", true)
	evalCmd.AddPrimaryArg("tree-path", "the tree file to evaluate", true)

	dumpCmd := cli.AddSubcommand("dump", "evaluate a tree file and print the whole document", true)
	dumpCmd.AddPrimaryArg("tree-path", "the tree file to evaluate", true)
	dumpCmd.AddStringArg("format", "f", "output format: text, yaml or json", false)

	buildCmd := cli.AddSubcommand("build", "build the project described by stn.yml or stn.toml", true)
	buildCmd.AddPrimaryArg("project-path", "the project manifest or directory", false)

	cli.AddSubcommand("repl", "evaluate statements interactively", false)
	cli.AddSubcommand("version", "print the stn version", false)

	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		return 1
	}

	loglevel, _ := result.Arguments["loglevel"].(string)
	level, err := report.ParseLevel(loglevel)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		return 1
	}
	report.Initialize(level)

	subcmdName, subResult, ok := result.Subcommand()
	if !ok {
		printUsage()
		return 1
	}
	switch subcmdName {
	case "eval":
		path, _ := subResult.PrimaryArg()
		return runEval(path, os.Stdout)
	case "dump":
		path, _ := subResult.PrimaryArg()
		format, _ := subResult.Arguments["format"].(string)
		return runDump(path, format, os.Stdout)
	case "build":
		path, _ := subResult.PrimaryArg()
		return runBuild(path, os.Stdout)
	case "repl":
		return runRepl(os.Stdin, os.Stdout)
	case "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	default:
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  stn eval <tree>                 Evaluate a tree file and print its results
  stn dump <tree> [-f format]     Print the evaluated document (text, yaml, json)
  stn build [project]             Build the project in stn.yml or stn.toml
  stn repl                        Evaluate statements interactively
  stn version                     Print the tool version
`)
}

func evaluateFile(path string) (*interpreter.Document, error) {
	input, err := tree.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return interpreter.Evaluate(input)
}

func runEval(path string, out io.Writer) int {
	doc, err := evaluateFile(path)
	if err != nil {
		report.LogError("Evaluate Error", err)
		return 1
	}
	for _, res := range doc.Results {
		fmt.Fprintln(out, runtime.Format(res))
	}
	return 0
}

func runDump(path, formatName string, out io.Writer) int {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		return 1
	}
	doc, err := evaluateFile(path)
	if err != nil {
		report.LogError("Evaluate Error", err)
		return 1
	}
	if err := export.Write(out, doc, format); err != nil {
		report.LogError("Output Error", err)
		return 1
	}
	return 0
}

func runBuild(path string, out io.Writer) int {
	manifestPath, err := locateProject(path)
	if err != nil {
		report.PrintErrorMessage("Project Error", err)
		return 1
	}
	project, err := driver.LoadProject(manifestPath)
	if err != nil {
		report.PrintErrorMessage("Project Load Error", err)
		return 1
	}
	if project.LogLevel != "" {
		level, err := report.ParseLevel(project.LogLevel)
		if err == nil {
			report.Initialize(level)
		}
	}

	report.LogHeader(cliToolVersion, project.Name)
	if _, err := driver.Build(project, out); err != nil {
		report.Finish("")
		return 1
	}
	outputPath := ""
	if project.Output.Path != "" {
		outputPath = project.Resolve(project.Output.Path)
	}
	if !report.Finish(outputPath) {
		return 1
	}
	return 0
}

// locateProject accepts a manifest path, a directory, or nothing (the
// working directory).
func locateProject(path string) (string, error) {
	if path == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("project: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}
	found, err := driver.FindProject(path)
	if errors.Is(err, driver.ErrProjectNotFound) {
		abs, _ := filepath.Abs(path)
		return "", fmt.Errorf("%w (searched from %s)", err, abs)
	}
	return found, err
}
