package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/zephyrtronium/symbolic"
)

func main() {
	log.SetFlags(0)
	var (
		inname, cfgname, lang string
		with                  [][2]string
		eval, single          bool
		prec                  uint
		verbose               int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file, one expression per line (- for stdin)")
	flag.StringVar(&cfgname, "config", "", "YAML settings file")
	flag.StringVar(&lang, "lang", "", "language of error messages (default from settings, or English)")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.UintVar(&prec, "p", 0, "precision of numeric evaluation in bits")
	flag.BoolVar(&eval, "eval", false, "evaluate constants and functions numerically")
	flag.BoolVar(&single, "letters", false, "parse unknown names as products of single letters")
	flag.Func("v", "increase log verbosity (may be repeated)", func(string) error {
		verbose++
		return nil
	})
	flag.Parse()

	settings, err := loadSettings(cfgname)
	if err != nil {
		log.Fatal(err)
	}
	opts := settings.options()
	if eval {
		opts = append(opts, symbolic.Immediate())
	}
	if single {
		opts = append(opts, symbolic.SingleLetters())
	}
	if prec != 0 {
		opts = append(opts, symbolic.Prec(prec))
	}
	opts = append(opts, symbolic.Logger(logger(verbose)))
	binds, err := settings.bindings(opts)
	if err != nil {
		log.Fatal(err)
	}
	opts = append(opts, binds...)
	for _, d := range with {
		e, err := symbolic.Parse(d[1], opts...)
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		opts = append(opts, symbolic.SetVar(d[0], e))
	}
	tag := settings.locale()
	if lang != "" {
		t, err := language.Parse(lang)
		if err != nil {
			log.Fatalf("bad language %q: %v", lang, err)
		}
		tag = t
	}

	s := session{opts: opts, tag: tag, out: os.Stdout}
	switch {
	case flag.NArg() > 0:
		for _, arg := range flag.Args() {
			s.line(arg)
		}
	case inname != "":
		f, err := infile(inname)
		if err != nil {
			log.Fatal(err)
		}
		err = s.lines(f)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
	case readline.IsTerminal(int(os.Stdin.Fd())):
		if err := s.repl(); err != nil {
			log.Fatal(err)
		}
	default:
		if err := s.lines(os.Stdin); err != nil {
			log.Fatal(err)
		}
	}
	if s.failed {
		os.Exit(1)
	}
}

// logger creates the console logger. Each level of verbosity lowers the
// threshold by one level from warnings.
func logger(verbose int) zerolog.Logger {
	lvl := zerolog.WarnLevel - zerolog.Level(verbose)
	if lvl < zerolog.TraceLevel {
		lvl = zerolog.TraceLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}

func infile(inname string) (io.ReadCloser, error) {
	if inname == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(inname)
}

// session evaluates lines of input. Definitions persist to later lines.
type session struct {
	opts   []symbolic.Option
	tag    language.Tag
	out    io.Writer
	failed bool
}

// line evaluates one line of input and prints the result.
func (s *session) line(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	v, err := symbolic.ParseValue(text, s.opts...)
	if err != nil {
		s.failed = true
		fmt.Fprintln(s.out, symbolic.Localize(err, s.tag))
		return
	}
	if d, ok := v.(*symbolic.Definition); ok {
		e, ok := d.Value.(*symbolic.Expr)
		if !ok {
			s.failed = true
			fmt.Fprintf(s.out, "cannot bind %s to a non-expression\n", d.Name)
			return
		}
		s.opts = append(s.opts, symbolic.SetVar(d.Name, e))
	}
	fmt.Fprintln(s.out, v)
}

func (s *session) lines(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s.line(sc.Text())
	}
	return sc.Err()
}

func (s *session) repl() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()
	for {
		line, err := l.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}
		s.line(line)
		s.failed = false
	}
}
