package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/arbshrink/internal/sample"
)

// KindsCmd returns the kinds command.
func KindsCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("kinds", flag.ContinueOnError),
		Usage: "kinds",
		Short: "List sample kinds",
		Long:  "List the sample value kinds trace and repl can build, with their default buffer size.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return errUnexpectedArgs(args)
			}

			for _, kind := range sample.Kinds() {
				o.Printf("%-8s %4d  %s\n", kind.Name, kind.Size, kind.Description)
			}

			return nil
		},
	}
}
