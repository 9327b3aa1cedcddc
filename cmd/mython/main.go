// Command mython runs a Mython program: a file path argument, or the
// program on stdin with no arguments. Grounded on cmd/glox/glox.go's
// runFile/runRepl split; unlike the teacher's driver, debug dumping of
// tokens and the AST is opt-in (-tokens/-ast), so a default run
// produces exactly the program's own output, per spec.md §6.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/mython-lang/mython/pkg/lexer"
	"github.com/mython-lang/mython/pkg/parser"
	"github.com/mython-lang/mython/pkg/runtime"
	"github.com/mython-lang/mython/pkg/tokens"
)

var (
	dumpTokens = flag.Bool("tokens", false, "print the scanned token stream before running")
	dumpAst    = flag.Bool("ast", false, "print the parsed AST before running")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "usage: mython [-tokens] [-ast] [SOURCE_FILE]")
		os.Exit(64)
	}

	var src []byte
	var err error
	if len(args) == 1 {
		src, err = os.ReadFile(args[0])
	} else {
		src, err = readStdin()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(string(src)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readStdin() ([]byte, error) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var out []byte
	for scanner.Scan() {
		out = append(out, scanner.Bytes()...)
		out = append(out, '\n')
	}
	return out, scanner.Err()
}

func run(src string) error {
	lx, err := lexer.New(src)
	if err != nil {
		return err
	}

	if *dumpTokens {
		dumpTokenStream(src)
	}

	program, err := parser.Parse(lx)
	if err != nil {
		return err
	}

	if *dumpAst {
		fmt.Fprintf(os.Stderr, "%#v\n", program)
	}

	ctx := runtime.NewContext(os.Stdout)
	_, err = program.Execute(runtime.Closure{}, ctx)
	if err != nil {
		if _, ok := err.(*runtime.ReturnSignal); ok {
			return fmt.Errorf("return used outside of a method body")
		}
		return err
	}
	return nil
}

func dumpTokenStream(src string) {
	lx, err := lexer.New(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Fprintln(os.Stderr, "tokens:")
	for {
		t := lx.Current()
		fmt.Fprintf(os.Stderr, "  %s\n", t.Type)
		if t.Type == tokens.Eof {
			break
		}
		lx.Next()
	}
}
