package symbolic

import (
	"errors"
	"testing"
)

func TestCurrentDefault(t *testing.T) {
	c := Current()
	if c.Immediate || c.Defer || c.NoImplicitMul || c.SingleLetters {
		t.Errorf("default config has options enabled: %+v", c)
	}
	if !c.SortTerms {
		t.Error("default config does not sort terms")
	}
	if c.Prec != 64 {
		t.Errorf("wrong default precision: want 64, got %d", c.Prec)
	}
}

func TestScoped(t *testing.T) {
	err := Scoped(func() error {
		if !Current().Immediate {
			t.Error("Immediate not installed")
		}
		err := Scoped(func() error {
			c := Current()
			if !c.Immediate {
				t.Error("nested scope lost Immediate")
			}
			if c.Prec != 128 {
				t.Errorf("wrong nested precision: want 128, got %d", c.Prec)
			}
			return nil
		}, Prec(128))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if Current().Prec != 64 {
			t.Errorf("nested precision leaked: %d", Current().Prec)
		}
		e, err := Parse("pi")
		if err != nil {
			return err
		}
		if !e.IsNum() {
			t.Errorf("pi in immediate scope is %v", e)
		}
		return nil
	}, Immediate())
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if Current().Immediate {
		t.Error("Immediate leaked out of scope")
	}
}

func TestScopedError(t *testing.T) {
	want := errors.New("want")
	if err := Scoped(func() error { return want }); err != want {
		t.Errorf("wrong error: want %v, got %v", want, err)
	}
}

func TestScopedPanic(t *testing.T) {
	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Errorf("wrong panic: %v", r)
			}
		}()
		Scoped(func() error { panic("boom") }, Defer())
	}()
	if Current().Defer {
		t.Error("config not restored after panic")
	}
}

func TestScopedGoroutine(t *testing.T) {
	// Other goroutines keep their own configuration.
	Scoped(func() error {
		done := make(chan bool)
		go func() {
			done <- Current().Immediate
		}()
		if <-done {
			t.Error("scope leaked into another goroutine")
		}
		return nil
	}, Immediate())
}

func TestDerive(t *testing.T) {
	base := DefaultConfig()
	c := derive(&base, []Option{SetVar("x", 1), nil, Prec(0), SortTerms(false)})
	if c.Prec != 64 {
		t.Errorf("zero precision not defaulted: %d", c.Prec)
	}
	if c.SortTerms {
		t.Error("SortTerms(false) not applied")
	}
	if base.Values != nil {
		t.Error("derive modified the base values")
	}
	if x := c.Values["x"]; x == nil || x.Text() != "1" {
		t.Errorf("wrong binding for x: %v", x)
	}
	d := derive(c, []Option{SetVar("y", 2)})
	if len(c.Values) != 1 || len(d.Values) != 2 {
		t.Errorf("bindings shared between configs: %v and %v", c.Values, d.Values)
	}
}
