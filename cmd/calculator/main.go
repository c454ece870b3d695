package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/internal/keypad"
	"github.com/zephyrtronium/calculator/internal/logger"
	"github.com/zephyrtronium/calculator/internal/tui"
	"github.com/zephyrtronium/calculator/internal/web"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, addr  string
		level, logfile      string
		nl, echo, lx, inter bool
		prec                int
	)
	flag.StringVar(&inname, "in", "", "input file, UTF-8 or UTF-16 with BOM (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "", "result formatting verb, e.g. %g (default four decimal places)")
	flag.IntVar(&prec, "p", 64, "precision of calculations in bits")
	flag.BoolVar(&nl, "n", false, "evaluate separate input lines as separate expressions")
	flag.BoolVar(&lx, "lex", false, "split unspaced input like 2+3*sin(90) into tokens")
	flag.BoolVar(&echo, "echo", false, "print postfix forms")
	flag.BoolVar(&inter, "tui", false, "run the interactive keypad")
	flag.StringVar(&addr, "serve", "", "serve the browser keypad on `addr`")
	flag.StringVar(&level, "log", "warn", "log level: debug, info, warn, error, none")
	flag.StringVar(&logfile, "logfile", "", "write logs to `path` instead of stderr")
	flag.Parse()
	if prec <= 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	lg, err := openLog(logger.ParseLevel(level), logfile, inter)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Close()
	logger.Init(lg)

	ctx := calculator.NewContext(calculator.Prec(uint(prec)))
	switch {
	case inter:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fatal(lg, "-tui needs a terminal")
		}
		if err := tui.Run(keypad.New(ctx, lg), lg); err != nil {
			fatal(lg, err)
		}
		return
	case addr != "":
		serve(web.Config{Addr: addr}, keypad.New(ctx, lg), lg)
		return
	}

	var exprs []string
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		fatal(lg, err)
	}
	if f != nil {
		e, err := split(f, nl)
		f.Close()
		if err != nil {
			fatal(lg, err)
		}
		exprs = append(exprs, e...)
	}
	exprs = append(exprs, flag.Args()...)

	failed := false
	for _, expr := range exprs {
		if !eval(os.Stdout, ctx, expr, verb, lx, echo) {
			failed = true
		}
	}
	if failed {
		lg.Close()
		os.Exit(1)
	}
}

// openLog opens the command's logger. Terminal sessions log only to a file.
func openLog(level logger.Level, path string, inter bool) (*logger.Logger, error) {
	if path != "" {
		return logger.Open(level, path, "calculator")
	}
	if inter {
		return logger.New(logger.LevelNone, nil, "calculator"), nil
	}
	return logger.New(level, os.Stderr, "calculator"), nil
}

// logFatal is log.Fatal, replaced in tests.
var logFatal = log.Fatal

// fatal logs v, closes lg, and exits.
func fatal(lg *logger.Logger, v ...any) {
	lg.Error("%s", fmt.Sprint(v...))
	lg.Close()
	logFatal(v...)
}

func serve(cfg web.Config, k *keypad.Keypad, lg *logger.Logger) {
	s := web.NewServer(cfg, k, lg)
	if err := s.Start(); err != nil {
		fatal(lg, err)
	}
	fmt.Printf("serving keypad on http://%s/\n", s.Addr())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	if err := s.Stop(); err != nil {
		fatal(lg, err)
	}
}

// eval evaluates one expression and prints the result or the error line.
// It reports whether evaluation succeeded.
func eval(w io.Writer, ctx *calculator.Context, expr, verb string, lx, echo bool) bool {
	expr = strings.TrimSpace(expr)
	var tokens []string
	if lx {
		var err error
		tokens, err = calculator.Lex(expr)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", keypad.ErrorText, err)
			return false
		}
	} else {
		tokens = calculator.Tokenize(expr)
	}
	postfix := ctx.ToPostfix(tokens)
	if echo {
		fmt.Fprintf(w, "%s : ", strings.Join(postfix, " "))
	}
	r := ctx.EvalPostfix(postfix)
	if err := ctx.Err(); err != nil {
		fmt.Fprintf(w, "%s: %v\n", keypad.ErrorDisplay(err), err)
		return false
	}
	fmt.Fprintln(w, format(r, verb))
	return true
}

func format(r *big.Float, verb string) string {
	if verb == "" {
		return calculator.Format(r)
	}
	return fmt.Sprintf(verb, r)
}

// split reads all of r as expressions. With lines, each non-blank line is
// an expression; otherwise the whole input is one.
func split(r io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(b)) == "" {
			return nil, nil
		}
		return []string{string(b)}, nil
	}
	var exprs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := sc.Text(); strings.TrimSpace(line) != "" {
			exprs = append(exprs, line)
		}
	}
	return exprs, sc.Err()
}

type input struct {
	io.Reader
	close func() error
}

func (in *input) Close() error {
	if in.close == nil {
		return nil
	}
	return in.close()
}

// infile opens the named input, or stdin for "-" or when std is set. The
// text is decoded from UTF-16 when it starts with a byte-order mark and
// passed through as UTF-8 otherwise.
func infile(inname string, std bool) (*input, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	in := &input{Reader: transform.NewReader(f, dec)}
	if f != os.Stdin {
		in.close = f.Close
	}
	return in, nil
}
