package cli

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/calvinalkan/arbshrink/internal/sample"
)

const replPrompt = "arbtrace> "

var replCommands = []string{
	"current", "simplify", "complicate", "state", "input", "help", "quit", "exit", "q",
}

// ReplCmd returns the repl command.
func ReplCmd(env *Env) *Command {
	tf := newTreeFlags("repl")

	return &Command{
		Flags: tf.fs,
		Usage: "repl --kind <kind> [flags]",
		Short: "Drive a tree interactively",
		Long: `Build a tree like trace does, then read commands:

  current            Show the current value
  simplify [n]       Call Simplify n times (default 1)
  complicate         Undo the last successful Simplify
  state              Show cursor state
  input              Show the prefix that produced the current value
  help               Show this help
  quit               Exit`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return errUnexpectedArgs(args)
			}

			tree, err := tf.build(env)
			if err != nil {
				return err
			}

			o.Println(tf.origin)
			o.Println("Type 'help' for available commands.")

			prompter, closeFn := newPrompter(o)
			defer closeFn()

			return (&Session{tree: tree, o: o}).Loop(ctx, prompter)
		},
	}
}

// Prompter reads one line of input. *liner.State implements it.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func newPrompter(o *IO) (Prompter, func()) {
	if f, ok := o.In().(*os.File); ok && f == os.Stdin && liner.TerminalSupported() {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		state.SetCompleter(completeCommand)

		historyPath := historyFile()
		if h, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(h)
			_ = h.Close()
		}

		return state, func() {
			if historyPath != "" {
				if h, err := os.Create(historyPath); err == nil {
					_, _ = state.WriteHistory(h)
					_ = h.Close()
				}
			}

			_ = state.Close()
		}
	}

	in := o.In()
	if in == nil {
		in = strings.NewReader("")
	}

	return &linePrompter{scanner: bufio.NewScanner(in)}, func() {}
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".arbtrace_history")
}

func completeCommand(line string) []string {
	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range replCommands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

// linePrompter reads lines from a non-terminal reader.
type linePrompter struct {
	scanner *bufio.Scanner
}

func (p *linePrompter) Prompt(string) (string, error) {
	if !p.scanner.Scan() {
		err := p.scanner.Err()
		if err == nil {
			err = io.EOF
		}

		return "", err
	}

	return p.scanner.Text(), nil
}

func (p *linePrompter) AppendHistory(string) {}

// Session executes repl commands against one tree.
type Session struct {
	tree sample.Tree
	o    *IO

	simplified int
	accepted   int
}

// Loop reads commands until quit, EOF, an aborted prompt or ctx is done.
func (s *Session) Loop(ctx context.Context, p Prompter) error {
	for ctx.Err() == nil {
		line, err := p.Prompt(replPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		p.AppendHistory(line)

		if s.Exec(line) {
			return nil
		}
	}

	return ctx.Err()
}

// Exec runs one command line. Returns true when the session should end.
func (s *Session) Exec(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		s.o.Println("Commands: current, simplify [n], complicate, state, input, help, quit")
	case "current", "c":
		s.o.Println(formatValue(s.tree.Current()))
	case "simplify", "s":
		s.simplify(args)
	case "complicate", "x":
		if s.tree.Complicate() {
			s.o.Printf("restored: %s\n", formatValue(s.tree.Current()))
		} else {
			s.o.Println("nothing to undo")
		}
	case "state":
		s.o.Printf("len=%d next=%d has_prev=%v simplify_calls=%d accepted=%d\n",
			s.tree.Len(), s.tree.Next(), s.tree.HasPrev(), s.simplified, s.accepted)
	case "input":
		s.o.Println(hex.EncodeToString(s.tree.Input()))
	default:
		s.o.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	return false
}

func (s *Session) simplify(args []string) {
	n := 1

	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			s.o.Printf("invalid count %q\n", args[0])

			return
		}

		n = parsed
	}

	for range n {
		s.simplified++

		if !s.tree.Simplify() {
			s.o.Printf("len=%d rejected\n", s.tree.Next())

			continue
		}

		s.accepted++

		s.o.Printf("len=%d %s\n", s.tree.Next(), formatValue(s.tree.Current()))
	}
}
