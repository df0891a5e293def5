package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/Konstantin8105/errors"
	"github.com/alecthomas/repr"
	"github.com/google/uuid"

	"github.com/zephyrtronium/shunt"
	"github.com/zephyrtronium/shunt/internal/guard"
	"github.com/zephyrtronium/shunt/internal/history"
)

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	inname, verb, histname string
	echo, debug, rassoc    bool
}

// run evaluates each expression from the input and then from args, one per
// line, and returns the exit status. Input lines are answered as they are
// read.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var o options
	fs := flag.NewFlagSet("shunt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: shunt [flags] [--] [expression ...]")
		fmt.Fprintln(fs.Output(), "Flags end at the first argument that is not one; use -- before an expression that looks like a flag.")
		fs.PrintDefaults()
	}
	fs.StringVar(&o.inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	fs.StringVar(&o.verb, "fmt", "%g", "result formatting string")
	fs.StringVar(&o.histname, "history", "", "SQLite file to record evaluations in")
	fs.BoolVar(&o.echo, "echo", false, "print postfix forms")
	fs.BoolVar(&o.debug, "debug", false, "dump tokens")
	fs.BoolVar(&o.rassoc, "rassoc", false, "make ^ right-associative")
	flags, exprs := splitargs(fs, args)
	if err := fs.Parse(flags); err != nil {
		return 2
	}
	logger := log.New(stderr, "", 0)

	f, err := infile(o.inname, stdin, len(exprs) == 0)
	if err != nil {
		logger.Print(err)
		return 1
	}
	if c, ok := f.(io.Closer); ok && o.inname != "" && o.inname != "-" {
		defer c.Close()
	}

	var opts []shunt.TranslateOption
	if o.rassoc {
		opts = append(opts, shunt.RightAssocPow())
	}
	opt := shunt.TranslatingPreset(opts...)

	ctx := context.Background()
	var store *history.Store
	if o.histname != "" {
		store, err = history.Open(ctx, o.histname)
		if err != nil {
			logger.Print(err)
			return 1
		}
		defer store.Close()
	}
	session := uuid.New().String()

	et := errors.New("shunt")
	n, failed := 0, 0
	verb := o.verb + "\n"
	eval := func(line string) {
		n++
		r, err := evalLine(stdout, line, opt, o)
		if store != nil {
			if _, herr := store.Record(ctx, session, line, r, err); herr != nil {
				logger.Print(herr)
			}
		}
		if err != nil {
			fmt.Fprintln(stdout, "error:", err)
			et.Add(fmt.Errorf("line %d: %q: %w", n, line, err))
			failed++
			return
		}
		fmt.Fprintf(stdout, verb, r)
	}

	if f != nil {
		// A bufio.Reader has no line length limit. Overlong lines reach
		// guard and are reported like any other bad expression.
		br := bufio.NewReader(f)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				eval(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				logger.Print(err)
				return 1
			}
		}
	}
	for _, line := range exprs {
		eval(line)
	}
	if failed > 0 {
		logger.Print(et.Error())
		return 1
	}
	return 0
}

// splitargs separates leading flags from expressions. Flags end at "--" or
// at the first argument that does not name a flag of fs, so an expression
// like "-5 + 3" is not mistaken for one.
func splitargs(fs *flag.FlagSet, args []string) (flags, exprs []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return args[:i], args[i+1:]
		}
		if len(a) < 2 || a[0] != '-' {
			return args[:i], args[i:]
		}
		name := strings.TrimPrefix(a[1:], "-")
		name, _, eq := strings.Cut(name, "=")
		if name == "h" || name == "help" {
			continue
		}
		fl := fs.Lookup(name)
		if fl == nil {
			return args[:i], args[i:]
		}
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); eq || ok && b.IsBoolFlag() {
			continue
		}
		// The flag's value is the next argument.
		i++
	}
	return args, nil
}

// evalLine checks and evaluates one line, printing its tokens or postfix
// form as the options ask.
func evalLine(w io.Writer, line string, opt shunt.TranslateOption, o options) (float64, error) {
	if err := guard.Line(line); err != nil {
		return 0, err
	}
	tokens, err := shunt.Tokenize(line)
	if err != nil {
		return 0, err
	}
	if o.debug {
		fmt.Fprintln(w, repr.String(tokens, repr.Indent("  ")))
	}
	postfix, err := shunt.Translate(tokens, opt)
	if err != nil {
		return 0, err
	}
	if o.echo {
		fmt.Fprintf(w, "%s : ", shunt.Render(postfix))
	}
	return shunt.Evaluate(postfix)
}

func infile(inname string, stdin io.Reader, std bool) (io.Reader, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return stdin, nil
	}
	return nil, nil
}
