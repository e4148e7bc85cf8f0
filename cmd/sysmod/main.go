package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/sysmod-lang/sysmod/internal/diagnostics"
	"github.com/sysmod-lang/sysmod/internal/document"
	"github.com/sysmod-lang/sysmod/internal/evaluator"
	"github.com/sysmod-lang/sysmod/internal/library"
	"github.com/sysmod-lang/sysmod/internal/model"
)

const usage = `usage:
  sysmod check <file>...           parse and build, print diagnostics
  sysmod eval <file> <name>        evaluate the named feature's value
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		if len(os.Args) < 3 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		os.Exit(runCheck(os.Args[2:]))
	case "eval":
		if len(os.Args) != 4 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		os.Exit(runEval(os.Args[2], os.Args[3]))
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func newWorkspace() *document.Workspace {
	ws := document.NewWorkspace(nil)
	lib, err := library.OpenDefault(ws.Registry())
	if err != nil {
		fmt.Fprintf(os.Stderr, "sysmod: library: %v\n", err)
	}
	if lib != nil {
		ws.SetLibrary(lib)
	}
	return ws
}

func runCheck(paths []string) int {
	ws := newWorkspace()
	failed := false
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sysmod: %v\n", err)
			failed = true
			continue
		}
		doc := ws.Open(path, string(data))
		for _, d := range doc.Diagnostics {
			printDiagnostic(d)
			if d.Severity == diagnostics.Error {
				failed = true
			}
		}
	}
	if failed {
		return 1
	}
	return 0
}

func runEval(path, name string) int {
	ws := newWorkspace()
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sysmod: %v\n", err)
		return 1
	}
	doc := ws.Open(path, string(data))
	for _, d := range doc.Diagnostics {
		printDiagnostic(d)
	}

	target := findByQualifiedName(doc, name)
	if target == nil {
		fmt.Fprintf(os.Stderr, "sysmod: %q not found in %s\n", name, path)
		return 1
	}
	if target.Feat == nil || target.Feat.Value() == nil {
		fmt.Fprintf(os.Stderr, "sysmod: %q has no value expression\n", name)
		return 1
	}
	results := evaluator.Evaluate(target.Feat.Value(), target)
	if results == nil {
		fmt.Println("not evaluable")
		return 1
	}
	for _, v := range results {
		switch val := v.(type) {
		case *model.Element:
			fmt.Println(val.QualifiedName())
		case evaluator.Infinity:
			fmt.Println("*")
		default:
			fmt.Println(val)
		}
	}
	return 0
}

func findByQualifiedName(doc *document.Document, name string) *model.Element {
	if doc.Arena == nil {
		return nil
	}
	for _, e := range doc.Arena.Elements() {
		if e.QualifiedName() == name {
			return e
		}
	}
	return nil
}

func printDiagnostic(d *diagnostics.Diagnostic) {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		color := "\033[31m" // red
		if d.Severity == diagnostics.Warning {
			color = "\033[33m" // yellow
		}
		fmt.Fprintf(os.Stderr, "%s%s\033[0m\n", color, d.Error())
		return
	}
	fmt.Fprintln(os.Stderr, d.Error())
}
