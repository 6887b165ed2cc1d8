// Command regexdump compiles a pattern given on argv and prints its
// optimized AST, its linearized NFA state table, and which matching
// engine it will run on.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/coregx/regex/ast"
	"github.com/coregx/regex/nfa"
	"github.com/coregx/regex/optimizer"
	"github.com/coregx/regex/parser"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("regexdump: ")

	caseInsensitive := flag.Bool("i", false, "case-insensitive")
	dotNewline := flag.Bool("s", false, "dot matches line separators")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: regexdump [-i] [-s] <pattern>")
		os.Exit(2)
	}
	pattern := flag.Arg(0)

	root, isFromStartOfString, err := parser.Parse(pattern)
	if err != nil {
		log.Fatal(err)
	}

	optimized, numCaptures := optimizer.Optimize(root)

	cfg := nfa.DefaultCompilerConfig()
	cfg.CaseInsensitive = *caseInsensitive
	cfg.DotNewline = *dotNewline

	machine, err := nfa.Compile(optimized, numCaptures, isFromStartOfString, cfg, pattern)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("pattern: %q\n\n", pattern)
	fmt.Println("optimized AST:")
	fmt.Print(ast.Dump(optimized))
	fmt.Println()
	fmt.Println("compiled NFA:")
	fmt.Print(machine.Dump())
	fmt.Println()
	if machine.IsRegular {
		fmt.Println("engine: BFS (linear time)")
	} else {
		fmt.Println("engine: DFS (backtracking)")
	}
}
