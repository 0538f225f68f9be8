package tns

import (
	"errors"
	"log/slog"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const lookupSource = "SALES,SALES.EXAMPLE.COM=(HOST=s1)\r\n" +
	"REPORTS=(HOST=r1)\r\n" +
	"sales=(HOST=shadowed)\r\n"

func TestDocument_Lookup(t *testing.T) {
	doc := mustParse(t, lookupSource)

	tests := []struct {
		service string
		host    string
	}{
		{"SALES", "s1"},
		{"sales", "s1"},
		{"Sales.Example.Com", "s1"},
		{"reports", "r1"},
	}

	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			e, err := doc.Lookup(tt.service)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}

			if host, _ := e.Parameter().Atom(); host != tt.host {
				t.Errorf("HOST = %q, want %q", host, tt.host)
			}
		})
	}
}

func TestDocument_Lookup_NotFound(t *testing.T) {
	doc := mustParse(t, lookupSource)

	_, err := doc.Lookup("SALE")
	if !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("err = %v, want ErrServiceNotFound", err)
	}

	var te *Error
	if !errors.As(err, &te) {
		t.Fatalf("err = %T, want *Error", err)
	}

	var suggestions []string

	for _, a := range te.Attrs() {
		if a.Key == "suggestions" && a.Value.Kind() == slog.KindAny {
			suggestions, _ = a.Value.Any().([]string)
		}
	}

	if !slices.Contains(suggestions, "SALES") {
		t.Errorf("suggestions = %v, want SALES among them", suggestions)
	}
}

func TestDocument_Suggest(t *testing.T) {
	doc := mustParse(t,
		"ORCL1=(K=1)\r\nORCL2=(K=1)\r\nORCL3=(K=1)\r\nORCL4=(K=1)\r\nHR=(K=1)\r\n")

	got := doc.Suggest("orcl")
	if len(got) != maxSuggestions {
		t.Errorf("Suggest() = %v, want %d results", got, maxSuggestions)
	}

	if got := doc.Suggest("zzz"); len(got) != 0 {
		t.Errorf("Suggest(zzz) = %v, want none", got)
	}

	if diff := cmp.Diff([]string{"HR"}, doc.Suggest("hr")); diff != "" {
		t.Errorf("Suggest(hr) mismatch (-want +got):\n%s", diff)
	}
}
