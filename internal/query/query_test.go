package query

import (
	"errors"
	"testing"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		err   error
	}{
		{name: "empty", raw: "", err: ErrEmptyQuery},
		{name: "whitespace only", raw: "   ", err: ErrEmptyQuery},
		{name: "tabs and newlines", raw: "\t\n", err: ErrEmptyQuery},
		{name: "plain term", raw: "CompanyInfoUpdater", want: "CompanyInfoUpdater"},
		{name: "boolean grouping", raw: "config AND (yaml OR yml)", want: "config AND (yaml OR yml)"},
		{name: "filters untouched", raw: "className NOT test project:MYPROJ ext:java", want: "className NOT test project:MYPROJ ext:java"},
		{name: "lower-case keywords not uppercased", raw: "config and yaml", want: "config and yaml"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Translate(test.raw)
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Fatalf("error: %v, want %v", err, test.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Translate failed: %v", err)
			}
			if got != test.want {
				t.Errorf("query: %q, want %q", got, test.want)
			}
		})
	}
}
