package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mtaka/STN-Core/pkg/export"
	"github.com/mtaka/STN-Core/pkg/interpreter"
	"github.com/mtaka/STN-Core/pkg/runtime"
	"github.com/mtaka/STN-Core/pkg/tree"
)

const replPrompt = "stn> "

const replHelp = `Enter one statement per line in YAML flow form, e.g.
  ["@", {"%Person": [":name", ":age", "%"]}]
  ["@", "#R1", {"%Person": [Taro, 36]}]
  ["#R1", ".age"]
Units starting with # must be quoted.
Commands:
  :vars      list global and local bindings
  :types     list type definitions
  :i <stmt>  evaluate and print the result in detail
  :reset     discard all definitions
  :help      show this message
  :q, :quit  leave the repl
`

// runRepl reads statements from in until EOF or :quit, printing each
// expression result to out.
func runRepl(in io.Reader, out io.Writer) int {
	session := interpreter.NewSession()
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, replPrompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == ":q" || line == ":quit" {
			return 0
		}
		replLine(session, line, out)
		fmt.Fprint(out, replPrompt)
	}
	fmt.Fprintln(out)
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return 1
	}
	return 0
}

func replLine(session *interpreter.Session, line string, out io.Writer) {
	switch {
	case line == "":
	case line == ":help":
		fmt.Fprint(out, replHelp)
	case line == ":reset":
		session.Reset()
	case line == ":vars":
		doc := session.Document()
		for _, name := range doc.GlobalNames() {
			fmt.Fprintf(out, "#%s = %s\n", name, runtime.Format(doc.Globals[name]))
		}
		for _, name := range doc.LocalNames() {
			fmt.Fprintf(out, "@%s = %s\n", name, runtime.Format(doc.Locals[name]))
		}
	case line == ":types":
		doc := session.Document()
		for _, name := range doc.TypeNames() {
			fmt.Fprintln(out, export.TypeSignature(doc.Typedefs[name]))
		}
	case strings.HasPrefix(line, ":i "):
		replEval(session, strings.TrimSpace(line[3:]), out, runtime.Inspect)
	case strings.HasPrefix(line, ":"):
		fmt.Fprintf(out, "unknown command %s (try :help)\n", line)
	default:
		replEval(session, line, out, runtime.Format)
	}
}

func replEval(session *interpreter.Session, src string, out io.Writer, render func(runtime.Value) string) {
	stmt, err := tree.ParseStatement(src)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	if len(stmt.Nodes) == 0 {
		return
	}
	results, err := session.Eval(stmt)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	for _, res := range results {
		fmt.Fprintln(out, render(res))
	}
}
