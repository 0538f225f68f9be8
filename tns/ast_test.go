package tns

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParameter_Find(t *testing.T) {
	root := mustParse(t,
		"A=(DESCRIPTION=(ADDRESS=(HOST=h1)(PORT=1))(ADDRESS=(HOST=h2))(CONNECT_DATA=(SID=X)))\r\n").
		Entries()[0].Parameter()

	tests := []struct {
		name  string
		found bool
		atom  string
	}{
		{"host", true, "h1"},
		{"SID", true, "X"},
		{"description", true, ""},
		{"missing", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := root.Find(tt.name)
			if ok != tt.found {
				t.Fatalf("Find(%q) found = %v", tt.name, ok)
			}

			if !ok {
				return
			}

			if atom, _ := p.Atom(); atom != tt.atom {
				t.Errorf("atom = %q, want %q", atom, tt.atom)
			}
		})
	}
}

func TestParameter_Atoms(t *testing.T) {
	root := mustParse(t,
		"A=(DESCRIPTION=(ADDRESS=(host=h1)(PORT=1))(ADDRESS=(HOST=h2)(PORT=2)))\r\n").
		Entries()[0].Parameter()

	want := map[string][]string{
		"HOST": {"h1", "h2"},
		"PORT": {"1", "2"},
	}

	if diff := cmp.Diff(want, root.Atoms()); diff != "" {
		t.Errorf("Atoms() mismatch (-want +got):\n%s", diff)
	}
}

func TestParameter_Children(t *testing.T) {
	leaf := NewAtom("HOST", "x")
	if leaf.Children() != nil {
		t.Errorf("leaf has children")
	}

	parent := NewParameter("ADDR", leaf)
	if got := parent.Children(); len(got) != 1 || got[0] != leaf {
		t.Errorf("Children() = %v", got)
	}

	if _, ok := parent.Atom(); ok {
		t.Error("parent reports an atom")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
		ok   bool
	}{
		{"valid", NewDocument(NewEntry(NewAtom("HOST", "x"), "A")), true},
		{"no services", NewDocument(NewEntry(NewAtom("HOST", "x"))), false},
		{"bad service", NewDocument(NewEntry(NewAtom("HOST", "x"), "A B")), false},
		{"bad key", NewDocument(NewEntry(NewAtom("HO-ST", "x"), "A")), false},
		{"bad atom", NewDocument(NewEntry(NewAtom("HOST", "x y"), "A")), false},
		{"empty", NewDocument(NewEntry(NewParameter("DESC"), "A")), false},
		{"no descriptor", NewDocument(NewEntry(nil, "A")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v", err)
			}

			if !tt.ok && !errors.Is(err, ErrInvariant) {
				t.Errorf("Validate() = %v, want ErrInvariant", err)
			}
		})
	}
}

func TestDocument_Concat(t *testing.T) {
	a := mustParse(t, "A=(HOST=x)\r\n")
	b := mustParse(t, "B=(HOST=y)\r\nC=(HOST=z)\r\n")

	doc := a.Concat(b)

	if diff := cmp.Diff([]string{"A", "B", "C"}, doc.Services()); diff != "" {
		t.Errorf("Services() mismatch (-want +got):\n%s", diff)
	}

	if doc.Entries()[1] != b.Entries()[0] {
		t.Error("Concat copied an entry")
	}

	if a.Len() != 1 {
		t.Errorf("Concat modified its receiver")
	}
}

func TestDocument_All_StopsEarly(t *testing.T) {
	doc := mustParse(t, "A=(K=1)\r\nB=(K=2)\r\nC=(K=3)\r\n")

	n := 0
	for range doc.All() {
		n++
		if n == 2 {
			break
		}
	}

	if n != 2 {
		t.Errorf("iterated %d entries", n)
	}
}
