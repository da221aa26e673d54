package maincmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"

	"github.com/emberlang/ember/lang/compiler"
	"github.com/emberlang/ember/lang/vm"
)

const binName = "ash"

// Exit codes follow the sysexits.h convention the reference implementation
// uses: 64 for a command-line usage error, 65 for a script that failed to
// compile, 70 for a script that raised an uncaught runtime error, and 74
// for an I/O failure reading a script file.
const (
	exitUsage   = mainer.ExitCode(64)
	exitDataErr = mainer.ExitCode(65)
	exitSoftErr = mainer.ExitCode(70)
	exitIOErr   = mainer.ExitCode(74)
)

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...] [-- <arg>...]
       %[1]s -h|--help
       %[1]s -v|--version

Compiler and bytecode virtual machine for the Ember scripting language.

The <command> can be one of:
       run                       Compile and run one or more scripts. With
                                 no path given, starts an interactive REPL.
       tokenize                  Run the scanner phase only and print the
                                 resulting tokens.
       disassemble               Compile without running and print the
                                 resulting bytecode.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Valid flag options for the <run> command are:
       --stress-gc               Collect garbage before every instruction,
                                 to shake out GC bugs at the cost of speed.
       --config <path>           Load VM tuning parameters from a YAML file.

More information on the %[1]s repository:
       https://github.com/emberlang/ember
`, binName)
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	StressGC   bool   `flag:"stress-gc"`
	ConfigPath string `flag:"config"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", c.args[0])
	}

	if cmdName == "tokenize" || cmdName == "disassemble" {
		if len(c.args[1:]) == 0 {
			return fmt.Errorf("%s: at least one file must be provided", cmdName)
		}
	}

	if (c.flags["stress-gc"] || c.flags["config"]) && cmdName != "run" {
		return fmt.Errorf("%s: invalid flag for this command", cmdName)
	}

	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: strings.ToUpper(binName) + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return exitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	err := c.cmdFn(ctx, stdio, c.args[1:])
	return exitCodeFor(err)
}

// exitCodeFor maps an error returned by a command to the sysexits.h-style
// code the caller's shell sees. Each command already printed its own
// diagnostic to stderr before returning; this only chooses the number.
func exitCodeFor(err error) mainer.ExitCode {
	switch {
	case err == nil:
		return mainer.Success
	case errors.As(err, new(*compiler.CompileError)):
		return exitDataErr
	case errors.As(err, new(*vm.RuntimeError)):
		return exitSoftErr
	case errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) || errors.As(err, new(*fs.PathError)):
		return exitIOErr
	default:
		return exitUsage
	}
}

// valid commands are those that take a context and a mainer.Stdio and a
// slice of strings as input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		// must take 4 parameters (including receiver) and return 1
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}

		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
