package main

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/internal/logger"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		expr string
		verb string
		lex  bool
		echo bool
		want string
		ok   bool
	}{
		{"spaced", "( 1 + 2 ) * 3", "", false, false, "9.0000\n", true},
		{"lexed", "(1+2)*3", "", true, false, "9.0000\n", true},
		{"verb", "1 / 4", "%g", false, false, "0.25\n", true},
		{"echo", "1 + 2 * 3", "", false, true, "1 2 3 * + : 7.0000\n", true},
		{"div-zero", "1 / 0", "", false, false, "Error: Div by 0: division by zero\n", false},
		{"lex-error", "1 $ 2", "", true, false, "Error: ", false},
		{"malformed", "1 +", "", false, false, "Error: ", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var b bytes.Buffer
			ok := eval(&b, calculator.NewContext(), c.expr, c.verb, c.lex, c.echo)
			if ok != c.ok {
				t.Errorf("wrong success: want %t, got %t", c.ok, ok)
			}
			if c.ok && b.String() != c.want || !c.ok && !strings.HasPrefix(b.String(), c.want) {
				t.Errorf("wrong output: want %q, got %q", c.want, b.String())
			}
		})
	}
}

func TestSplit(t *testing.T) {
	cases := []struct {
		in    string
		lines bool
		want  []string
	}{
		{"1 +\n2\n", false, []string{"1 +\n2\n"}},
		{"1 + 2\n\n  \n3 * 4", true, []string{"1 + 2", "3 * 4"}},
		{" \n\t", false, nil},
		{"", true, nil},
	}
	for _, c := range cases {
		got, err := split(strings.NewReader(c.in), c.lines)
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("%q (lines=%t): want %q, got %q", c.in, c.lines, c.want, got)
		}
	}
}

func utf16le(s string) []byte {
	var b bytes.Buffer
	b.Write([]byte{0xff, 0xfe})
	for _, u := range utf16.Encode([]rune(s)) {
		binary.Write(&b, binary.LittleEndian, u)
	}
	return b.Bytes()
}

func TestInfile(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		data []byte
	}{
		{"utf8", []byte("2 ^ 10\n")},
		{"utf8-bom", append([]byte{0xef, 0xbb, 0xbf}, "2 ^ 10\n"...)},
		{"utf16le", utf16le("2 ^ 10\n")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(dir, c.name)
			if err := os.WriteFile(path, c.data, 0644); err != nil {
				t.Fatal(err)
			}
			in, err := infile(path, false)
			if err != nil {
				t.Fatal(err)
			}
			defer in.Close()
			b, err := io.ReadAll(in)
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != "2 ^ 10\n" {
				t.Errorf("wrong text: %q", b)
			}
		})
	}
}

func TestInfileNone(t *testing.T) {
	in, err := infile("", false)
	if err != nil || in != nil {
		t.Errorf("want nil input, got %v, %v", in, err)
	}
	if _, err := infile(filepath.Join(t.TempDir(), "missing"), false); err == nil {
		t.Error("no error opening a missing file")
	}
}

func TestFatalClosesLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.log")
	lg, err := logger.Open(logger.LevelInfo, path, "calculator")
	if err != nil {
		t.Fatal(err)
	}
	var got []any
	defer func(f func(...any)) { logFatal = f }(logFatal)
	logFatal = func(v ...any) { got = v }

	fatal(lg, "-tui needs a terminal")
	lg.Info("after fatal")
	if len(got) != 1 || got[0] != "-tui needs a terminal" {
		t.Errorf("wrong fatal args: %v", got)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "[ERROR] [calculator] -tui needs a terminal") {
		t.Errorf("fatal message not logged: %q", b)
	}
	if strings.Contains(string(b), "after fatal") {
		t.Errorf("log still open after fatal: %q", b)
	}
}
