package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/emberlang/ember/lang/scanner"
	"github.com/emberlang/ember/lang/token"
)

// Tokenize runs the scanner over each file in args and prints the resulting
// tokens, one per line, without compiling or running them.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		if err := tokenizeFile(stdio, path); err != nil {
			return err
		}
	}
	return nil
}

func tokenizeFile(stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	var s scanner.Scanner
	s.Init(src)
	var illegal bool
	for {
		tok := s.Scan()
		fmt.Fprintf(stdio.Stdout, "%4d %-18s %q\n", tok.Line, tok.Kind, tok.Lexeme)
		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.ILLEGAL {
			illegal = true
			fmt.Fprintf(stdio.Stderr, "%s: %d: %s\n", path, tok.Line, tok.Lexeme)
		}
	}
	if illegal {
		return fmt.Errorf("%s: one or more illegal tokens", path)
	}
	return nil
}
