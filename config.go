package symbolic

import (
	"github.com/jtolds/gls"
	"github.com/rs/zerolog"
)

// Config holds the settings read by parsing and by every rewrite operation.
// A Config is never modified once it is in use; options derive new ones.
type Config struct {
	// Immediate resolves constants, numeric function calls, and irrational
	// powers to decimal numbers instead of keeping them symbolic.
	Immediate bool
	// NoImplicitMul makes adjacent terms a parse error instead of a
	// multiplication.
	NoImplicitMul bool
	// SortTerms orders the terms of sums by degree in Text. Otherwise they
	// appear in key order.
	SortTerms bool
	// Defer wraps operands of arithmetic instead of combining them. Call
	// Canonical to combine them later.
	Defer bool
	// Prec is the precision in bits of numeric evaluation.
	Prec uint
	// SingleLetters parses every letter of an unknown identifier as its own
	// variable, so "xy" is x*y.
	SingleLetters bool
	// Funcs overrides entries of the default function registry. A nil entry
	// removes a function.
	Funcs map[string]Func
	// Values binds names to substitution values.
	Values map[string]*Expr
	// Logger receives debug output from the evaluator.
	Logger zerolog.Logger
}

// defaultConfig is the configuration outside of any Scoped call.
var defaultConfig = Config{
	SortTerms: true,
	Prec:      64,
	Logger:    zerolog.Nop(),
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return defaultConfig
}

var (
	cfgmgr = gls.NewContextManager()
	cfgkey = gls.GenSym()
)

// Current returns the configuration installed by the innermost Scoped call on
// this goroutine, or the default configuration.
func Current() *Config {
	if v, ok := cfgmgr.GetValue(cfgkey); ok {
		return v.(*Config)
	}
	return &defaultConfig
}

// Scoped derives a configuration from the current one by applying opts and
// installs it while fn runs. The previous configuration is restored when fn
// returns, including when it panics.
func Scoped(fn func() error, opts ...Option) error {
	cfg := derive(Current(), opts)
	return scoped(cfg, fn)
}

func scoped(cfg *Config, fn func() error) (err error) {
	cfgmgr.SetValues(gls.Values{cfgkey: cfg}, func() {
		err = fn()
	})
	return err
}

// derive copies base and applies opts in order.
func derive(base *Config, opts []Option) *Config {
	cfg := *base
	// Maps are shared with base until an option writes to them.
	for _, opt := range opts {
		if opt != nil {
			cfg = opt.option(cfg)
		}
	}
	if cfg.Prec == 0 {
		cfg.Prec = defaultConfig.Prec
	}
	return &cfg
}

// Option changes a setting of a Config.
type Option interface {
	option(Config) Config
}

type optfunc func(Config) Config

func (f optfunc) option(c Config) Config {
	return f(c)
}

// Immediate enables immediate evaluation: constants like pi and e become
// numbers, and so do irrational powers and functions of numbers.
func Immediate() Option {
	return optfunc(func(c Config) Config {
		c.Immediate = true
		return c
	})
}

// DisableImplicitMul makes juxtaposed terms like "2x" a parse error.
func DisableImplicitMul() Option {
	return optfunc(func(c Config) Config {
		c.NoImplicitMul = true
		return c
	})
}

// SortTerms sets whether Text orders sums by degree.
func SortTerms(sort bool) Option {
	return optfunc(func(c Config) Config {
		c.SortTerms = sort
		return c
	})
}

// Defer suspends canonicalization so that arithmetic wraps its operands.
func Defer() Option {
	return optfunc(func(c Config) Config {
		c.Defer = true
		return c
	})
}

// Prec sets the precision of numeric evaluation in bits.
func Prec(prec uint) Option {
	return optfunc(func(c Config) Config {
		c.Prec = prec
		return c
	})
}

// SingleLetters parses unknown identifiers as products of one-letter
// variables.
func SingleLetters() Option {
	return optfunc(func(c Config) Config {
		c.SingleLetters = true
		return c
	})
}

// Logger sets the logger for evaluator debug output.
func Logger(l zerolog.Logger) Option {
	return optfunc(func(c Config) Config {
		c.Logger = l
		return c
	})
}

// ParseFunc sets a function in the registry. To disable a default function,
// pass nil for fn; its name then parses as a variable.
func ParseFunc(name string, fn Func) Option {
	return ParseFuncs(map[string]Func{name: fn})
}

// ParseFuncs sets a group of functions in the registry.
func ParseFuncs(fns map[string]Func) Option {
	return optfunc(func(c Config) Config {
		m := make(map[string]Func, len(c.Funcs)+len(fns))
		for k, v := range c.Funcs {
			m[k] = v
		}
		for k, v := range fns {
			m[k] = v
		}
		c.Funcs = m
		return c
	})
}

// SetVar binds a name to a value. The value may be an *Expr, a string to
// parse, an integer, a float64, or a rational.Rational; other types are
// ignored.
func SetVar(name string, val interface{}) Option {
	return Values(map[string]interface{}{name: val})
}

// Values binds names to values as SetVar does for each entry.
func Values(vals map[string]interface{}) Option {
	return optfunc(func(c Config) Config {
		m := make(map[string]*Expr, len(c.Values)+len(vals))
		for k, v := range c.Values {
			m[k] = v
		}
		for k, v := range vals {
			if e := toExpr(v, &c); e != nil {
				m[k] = e
			}
		}
		c.Values = m
		return c
	})
}

// lookupFunc finds a function in the configured registry, then in the
// defaults.
func (c *Config) lookupFunc(name string) Func {
	if fn, ok := c.Funcs[name]; ok {
		return fn
	}
	return globalfuncs[name]
}
