package token

import "testing"

func TestKindString(t *testing.T) {
	for k := ILLEGAL; k < maxKind; k++ {
		if k.String() == "" {
			t.Errorf("missing string representation of kind %d", k)
		}
	}
}

func TestLookupIdent(t *testing.T) {
	for word, want := range keywords {
		if got := LookupIdent(word); got != want {
			t.Errorf("LookupIdent(%q) = %v, want %v", word, got, want)
		}
	}
	if got := LookupIdent("notAKeyword"); got != IDENT {
		t.Errorf("LookupIdent(notAKeyword) = %v, want IDENT", got)
	}
}
