// Package cli implements arbtrace, a tool for watching arbshrink trees
// shrink sample values step by step.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink/runner"
)

// Env holds what commands need besides their flags.
type Env struct {
	Config runner.Config
	Log    logrus.FieldLogger
}

// Run is the main entry point. Returns the exit code.
//
// args includes the program name. sigCh may be nil; a signal on it cancels
// the running command.
func Run(in io.Reader, out, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	global := flag.NewFlagSet("arbtrace", flag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(&strings.Builder{})

	verbose := global.BoolP("verbose", "v", false, "log rejects and shrink steps to stderr")
	configPath := global.StringP("config", "c", "", "runner config file (HuJSON)")

	if len(args) > 0 {
		args = args[1:]
	}

	err := global.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(out, global)

			return 0
		}

		fprintln(errOut, "error:", err)
		printUsage(errOut, global)

		return 1
	}

	if global.NArg() == 0 {
		printUsage(out, global)

		return 0
	}

	cfg, err := runner.LoadConfig(runner.LoadConfigInput{ConfigPath: *configPath, Env: env})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	cmdEnv := &Env{Config: cfg, Log: newLogger(errOut, cfg.LogLevel, *verbose)}

	commands := allCommands(cmdEnv)

	name := global.Arg(0)

	cmd, ok := commands[name]
	if !ok {
		fprintln(errOut, "error: unknown command:", name)
		printUsage(errOut, global)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	return cmd.Run(ctx, NewIO(in, out, errOut), global.Args()[1:])
}

func newLogger(w io.Writer, level string, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}

	if verbose {
		lvl = logrus.DebugLevel
	}

	log.SetLevel(lvl)

	return log
}

func allCommands(env *Env) map[string]*Command {
	list := commandList(env)

	commands := make(map[string]*Command, len(list))
	for _, cmd := range list {
		commands[cmd.Name()] = cmd
	}

	return commands
}

func commandList(env *Env) []*Command {
	return []*Command{
		KindsCmd(),
		TraceCmd(env),
		ReplCmd(env),
		RegressionsCmd(env),
	}
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, global *flag.FlagSet) {
	fprintln(w, `arbtrace - watch arbshrink trees shrink sample values

Usage: arbtrace [flags] <command> [args]

Flags:`)

	var buf strings.Builder

	global.SetOutput(&buf)
	global.PrintDefaults()
	global.SetOutput(&strings.Builder{})

	_, _ = fmt.Fprint(w, buf.String())

	fprintln(w)
	fprintln(w, "Commands:")

	for _, cmd := range commandList(&Env{}) {
		fprintln(w, cmd.HelpLine())
	}
}
