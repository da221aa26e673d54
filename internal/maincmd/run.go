package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mna/mainer"
	"github.com/peterh/liner"

	"github.com/emberlang/ember/internal/config"
	"github.com/emberlang/ember/lang/compiler"
	"github.com/emberlang/ember/lang/vm"
)

// Run compiles and executes each file in args in its own VM. With no file
// given, it starts an interactive REPL that shares a single VM across
// lines, the way the reference implementation's REPL lets one line see
// variables a previous line defined.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	opts, err := c.vmOptions(stdio)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return repl(stdio, opts)
	}

	for _, path := range args {
		if err := runFile(stdio, path, opts); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cmd) vmOptions(stdio mainer.Stdio) (vm.Options, error) {
	if c.ConfigPath == "" {
		opts := vm.NewOptions()
		opts.StressGC = c.StressGC
		return opts, nil
	}

	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return vm.Options{}, err
	}
	opts := cfg.Options()
	if c.StressGC {
		opts.StressGC = true
	}
	return opts, nil
}

func runFile(stdio mainer.Stdio, path string, opts vm.Options) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	machine := vm.New(stdio.Stdout, stdio.Stderr, opts)
	return machine.Interpret(src)
}

// repl runs a read-eval-print loop over stdio, using liner for line editing
// and history and fatih/color to set compile and runtime diagnostics apart
// from ordinary program output.
func repl(stdio mainer.Stdio, opts vm.Options) error {
	machine := vm.New(stdio.Stdout, replErrWriter{stdio.Stderr}, opts)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Fprintln(stdio.Stdout)
			return nil
		}
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		src := input
		if !endsInSemiOrBrace(src) {
			src += ";"
		}
		if err := machine.Interpret([]byte(src)); err != nil {
			switch err.(type) {
			case *compiler.CompileError, *vm.RuntimeError:
				// already printed to stdio.Stderr by Interpret
			default:
				fmt.Fprintln(stdio.Stderr, err)
			}
		}
	}
}

func endsInSemiOrBrace(s string) bool {
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			continue
		case ';', '}':
			return true
		default:
			return false
		}
	}
	return false
}

// replErrWriter colors diagnostics red so they stand out from a REPL
// session's ordinary print output.
type replErrWriter struct {
	w io.Writer
}

func (r replErrWriter) Write(p []byte) (int, error) {
	red := color.New(color.FgRed)
	red.Fprint(r.w, string(p))
	return len(p), nil
}

var _ io.Writer = replErrWriter{}
