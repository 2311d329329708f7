package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrPrecondition, "foo"),
			root: ErrPrecondition,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrPrecondition,
			b:      ErrPrecondition,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrPrecondition,
			b:      ErrInput,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrPrecondition,
			b:      errors.Wrap(ErrPrecondition, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrPrecondition,
			b:      errors.Wrap(ErrInput, "gone"),
			wantIs: false,
		},
		"multiple wraps": {
			a:      ErrInsufficientAmount,
			b:      Wrap(Wrap(ErrInsufficientAmount, "balance"), "transfer"),
			wantIs: true,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrPrecondition,
			wantIs: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - %t", got)
			}
		})
	}
}

func TestCode(t *testing.T) {
	if got := Code(nil); got != 0 {
		t.Fatalf("nil error code %d", got)
	}
	if got := Code(Wrap(ErrPrecondition, "expired")); got != ErrPrecondition.Code() {
		t.Fatalf("wrapped error code %d", got)
	}
	if got := Code(stdlib.New("plain")); got != 1 {
		t.Fatalf("stdlib error code %d", got)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(ErrPrecondition.Code(), "again")
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
}

func TestWrapStackTrace(t *testing.T) {
	err := Wrap(Wrap(ErrPrecondition, "inner"), "outer")
	if msg := err.Error(); msg != "outer: inner: precondition violated" {
		t.Fatalf("unexpected message %q", msg)
	}
	full := fmt.Sprintf("%+v", err)
	if !strings.Contains(full, "errors_test.go") {
		t.Fatalf("stacktrace not attached: %s", full)
	}
}
