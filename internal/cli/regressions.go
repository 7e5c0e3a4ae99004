package cli

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/arbshrink/internal/sample"
	"github.com/calvinalkan/arbshrink/pkg/arbshrink/runner"
)

var errNoRegressionsFile = errors.New("no regressions file: pass FILE or set regressions in the config")

// RegressionsCmd returns the regressions command.
func RegressionsCmd(env *Env) *Command {
	flags := flag.NewFlagSet("regressions", flag.ContinueOnError)
	test := flags.StringP("test", "t", "", "only show entries for this test")
	kindName := flags.StringP("kind", "k", "", "rebuild each input as this sample kind")

	return &Command{
		Flags: flags,
		Usage: "regressions [FILE] [flags]",
		Short: "List persisted failing inputs",
		Long: `List the entries of a regression file written by the runner. FILE
defaults to the configured regressions path.

With --kind, every input is rebuilt and its current value printed; inputs
that no longer construct are reported as warnings.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 1 {
				return errUnexpectedArgs(args[1:])
			}

			path := env.Config.Regressions
			if len(args) == 1 {
				path = args[0]
			}

			if path == "" {
				return errNoRegressionsFile
			}

			var kind *sample.Kind

			if *kindName != "" {
				k, err := sample.Lookup(*kindName)
				if err != nil {
					return err
				}

				kind = &k
			}

			entries, err := runner.NewStore(path).Entries()
			if err != nil {
				return err
			}

			shown := 0

			for _, entry := range entries {
				if *test != "" && entry.Test != *test {
					continue
				}

				shown++

				line := fmt.Sprintf("%s  %s", entry.Test, entry.Input)
				if entry.Value != "" {
					line += "  " + entry.Value
				}

				if kind != nil {
					rebuilt, rebuildErr := rebuild(*kind, entry)
					if rebuildErr != nil {
						o.Warn("%s %s: %v", entry.Test, entry.Input, rebuildErr)
					} else {
						line += "  => " + rebuilt
					}
				}

				o.Println(line)
			}

			env.Log.WithField("path", path).Debugf("%d of %d entries shown", shown, len(entries))

			return nil
		},
	}
}

func rebuild(kind sample.Kind, entry runner.Entry) (string, error) {
	data, err := entry.Bytes()
	if err != nil {
		return "", fmt.Errorf("bad hex: %w", err)
	}

	tree, err := kind.NewTree(data)
	if err != nil {
		return "", fmt.Errorf("no longer constructs a %s: %w", kind.Name, err)
	}

	return formatValue(tree.Current()), nil
}
