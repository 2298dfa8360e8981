// Package repl provides the interactive shell mode for mapkit-bench.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yndnr/mapkit-go/pkg/keyed"
)

// errExit signals a clean shell termination from the exit and quit
// commands.
var errExit = errors.New("exit")

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	completer *Completer
	history   *History
	session   *Session
}

// New creates a new REPL instance reading from stdin.
func New() *REPL {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO creates a REPL over explicit streams.
func NewWithIO(in io.Reader, out io.Writer) *REPL {
	return &REPL{
		input:     in,
		output:    out,
		completer: NewCompleter(),
		history:   NewHistory(),
		session:   NewSession(),
	}
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, "mapkit> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		if err := r.execute(line); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

func (r *REPL) execute(line string) error {
	args := strings.Fields(line)
	cmd, args := args[0], args[1:]

	// Unambiguous prefixes work as abbreviations: "inc n" runs incr.
	if full, candidates := r.completer.Resolve(cmd); full != "" {
		cmd = full
	} else if len(candidates) > 1 {
		return fmt.Errorf("ambiguous command %q: %s", cmd, strings.Join(candidates, ", "))
	}

	switch cmd {
	case "exit", "quit":
		return errExit
	case "help":
		r.printHelp()
		return nil
	case "new":
		return r.cmdNew(args)
	case "info":
		fmt.Fprintln(r.output, r.session.Describe())
		return nil
	}

	m, err := r.session.Map()
	if err != nil {
		return err
	}

	switch cmd {
	case "set":
		return r.cmdSet(m, args)
	case "get":
		return r.cmdGet(m, args)
	case "has":
		return r.cmdHas(m, args)
	case "del":
		return r.cmdDel(m, args)
	case "delifeq":
		return r.cmdDelIfEq(m, args)
	case "setnx":
		return r.cmdSetNX(m, args)
	case "replace":
		return r.cmdReplace(m, args)
	case "cas":
		return r.cmdCAS(m, args)
	case "incr":
		return r.cmdIncr(m, args)
	case "merge":
		return r.cmdMerge(m, args)
	case "keys":
		for _, k := range r.session.SortedKeys() {
			fmt.Fprintln(r.output, k)
		}
		return nil
	case "len":
		fmt.Fprintln(r.output, m.Len())
		return nil
	case "sweep":
		removed := m.Sweep(func(v string, _ string) bool { return v == "" })
		fmt.Fprintf(r.output, "removed %d\n", len(removed))
		return nil
	case "clear":
		m.Clear()
		return nil
	default:
		return fmt.Errorf("unknown command %q (try: help)", cmd)
	}
}

func (r *REPL) cmdNew(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: new hash|array [capacity] [strict]")
	}

	capacity := 0
	strict := false

	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("capacity %q: %w", args[1], err)
		}
		capacity = n
	}

	if len(args) > 2 {
		if args[2] != "strict" {
			return fmt.Errorf("unknown option %q (want strict)", args[2])
		}
		strict = true
	}

	if err := r.session.Create(args[0], capacity, strict); err != nil {
		return err
	}

	fmt.Fprintln(r.output, r.session.Describe())

	return nil
}

func (r *REPL) cmdSet(m *keyed.Map[string, string], args []string) error {
	if len(args) != 2 {
		return errors.New("usage: set <key> <value>")
	}

	if err := m.Set(args[0], args[1]); err != nil {
		return err
	}

	fmt.Fprintln(r.output, "ok")

	return nil
}

func (r *REPL) cmdGet(m *keyed.Map[string, string], args []string) error {
	if len(args) != 1 {
		return errors.New("usage: get <key>")
	}

	v, ok := m.GetUsable(args[0])
	if !ok {
		if m.Has(args[0]) {
			fmt.Fprintln(r.output, "(null)")
		} else {
			fmt.Fprintln(r.output, "(missing)")
		}
		return nil
	}

	fmt.Fprintln(r.output, v)

	return nil
}

func (r *REPL) cmdHas(m *keyed.Map[string, string], args []string) error {
	if len(args) != 1 {
		return errors.New("usage: has <key>")
	}

	fmt.Fprintln(r.output, m.Has(args[0]))

	return nil
}

func (r *REPL) cmdDel(m *keyed.Map[string, string], args []string) error {
	if len(args) != 1 {
		return errors.New("usage: del <key>")
	}

	fmt.Fprintln(r.output, m.Remove(args[0]))

	return nil
}

func (r *REPL) cmdDelIfEq(m *keyed.Map[string, string], args []string) error {
	if len(args) != 2 {
		return errors.New("usage: delifeq <key> <expected>")
	}

	fmt.Fprintln(r.output, m.RemoveIfEquals(args[0], args[1]))

	return nil
}

func (r *REPL) cmdSetNX(m *keyed.Map[string, string], args []string) error {
	if len(args) != 2 {
		return errors.New("usage: setnx <key> <value>")
	}

	prior, stored, err := m.SetIfAbsent(args[0], args[1])
	if err != nil {
		return err
	}

	if stored {
		fmt.Fprintln(r.output, "stored")
	} else {
		fmt.Fprintf(r.output, "kept %s\n", prior)
	}

	return nil
}

func (r *REPL) cmdReplace(m *keyed.Map[string, string], args []string) error {
	if len(args) != 2 {
		return errors.New("usage: replace <key> <value>")
	}

	old, ok := m.ReplaceValue(args[0], args[1])
	if !ok {
		fmt.Fprintln(r.output, "(missing)")
		return nil
	}

	fmt.Fprintf(r.output, "was %s\n", old)

	return nil
}

func (r *REPL) cmdCAS(m *keyed.Map[string, string], args []string) error {
	if len(args) != 3 {
		return errors.New("usage: cas <key> <old> <new>")
	}

	fmt.Fprintln(r.output, m.CompareAndSwapValue(args[0], args[1], args[2]))

	return nil
}

func (r *REPL) cmdIncr(m *keyed.Map[string, string], args []string) error {
	if len(args) != 1 {
		return errors.New("usage: incr <key>")
	}

	next, _, err := m.Compute(args[0], func(_ string, old string, present bool) (string, bool) {
		if !present {
			return "1", true
		}

		n, convErr := strconv.Atoi(old)
		if convErr != nil {
			return old, true
		}

		return strconv.Itoa(n + 1), true
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(r.output, next)

	return nil
}

func (r *REPL) cmdMerge(m *keyed.Map[string, string], args []string) error {
	if len(args) != 2 {
		return errors.New("usage: merge <key> <value>")
	}

	next, _, err := m.Merge(args[0], args[1], func(old, incoming string) (string, bool) {
		return old + incoming, true
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(r.output, next)

	return nil
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.output, `Commands:
  new hash|array [capacity] [strict]   create a container
  info                                 describe the container
  set <key> <value>                    store a value
  get <key>                            read a value (absence-rule aware)
  has <key>                            key present, null values included
  del <key>                            remove a key
  delifeq <key> <expected>             remove only on value match
  setnx <key> <value>                  store only when absent
  replace <key> <value>                replace only when present
  cas <key> <old> <new>                compare-and-swap the value
  incr <key>                           increment a numeric value
  merge <key> <value>                  concatenate into the stored value
  keys | len | sweep | clear           container-wide operations
  help | exit | quit
`)
}
