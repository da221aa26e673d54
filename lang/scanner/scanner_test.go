package scanner

import (
	"testing"

	"github.com/emberlang/ember/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	var s Scanner
	s.Init([]byte(src))
	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestScanPunctuation(t *testing.T) {
	toks := scanAll(t, "(){};,.-+/*!!====<<=>>=")
	want := []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.SEMI,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SLASH, token.STAR,
		token.BANG, token.BANG_EQ, token.EQ_EQ, token.EQ, token.LT, token.LT_EQ,
		token.GT, token.GT_EQ, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		require.Equalf(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll(t, "var counter = maker;")
	require.Equal(t, token.VAR, toks[0].Kind)
	require.Equal(t, token.IDENT, toks[1].Kind)
	require.Equal(t, "counter", toks[1].Lexeme)
	require.Equal(t, token.EQ, toks[2].Kind)
	require.Equal(t, token.IDENT, toks[3].Kind)
	require.Equal(t, token.SEMI, toks[4].Kind)
	require.Equal(t, token.EOF, toks[5].Kind)
}

func TestScanNumbers(t *testing.T) {
	toks := scanAll(t, "42 3.14 0.5")
	require.Equal(t, "42", toks[0].Lexeme)
	require.Equal(t, "3.14", toks[1].Lexeme)
	require.Equal(t, "0.5", toks[2].Lexeme)
}

func TestScanString(t *testing.T) {
	toks := scanAll(t, `"hello\nworld"`)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, `"hello\nworld"`, toks[0].Lexeme)
}

func TestScanUnterminatedString(t *testing.T) {
	toks := scanAll(t, `"oops`)
	require.Equal(t, token.ILLEGAL, toks[0].Kind)
}

func TestScanLineTracking(t *testing.T) {
	toks := scanAll(t, "var a = 1;\nvar b = 2;\n")
	require.Equal(t, 1, toks[0].Line)
	// "var" on line 2 is the 6th token: var a = 1 ; var
	require.Equal(t, 2, toks[5].Line)
}

func TestScanCommentsAndWhitespace(t *testing.T) {
	toks := scanAll(t, "// a comment\n   \tvar x = 1; // trailing\n")
	require.Equal(t, token.VAR, toks[0].Kind)
	require.Equal(t, 2, toks[0].Line)
}
