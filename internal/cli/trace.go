package cli

import (
	"context"
	"encoding/hex"

	"github.com/sirupsen/logrus"
)

// TraceCmd returns the trace command.
func TraceCmd(env *Env) *Command {
	tf := newTreeFlags("trace")
	maxSteps := tf.fs.Int("max-steps", 0, "stop after this many Simplify calls (0: until exhausted)")

	return &Command{
		Flags: tf.fs,
		Usage: "trace --kind <kind> [flags]",
		Short: "Simplify a tree until exhausted, printing every step",
		Long: `Build a tree for a sample kind and call Simplify until the prefix is
empty, treating every candidate as still failing. Each step prints the
prefix length tried and the value it produced, or "-" when the
constructor rejected that prefix.

The buffer comes from --hex, or is drawn from the runner's random source
(--seed, --size).`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return errUnexpectedArgs(args)
			}

			tree, err := tf.build(env)
			if err != nil {
				return err
			}

			o.Println(tf.origin)
			o.Printf("start   len=%-4d %s\n", tree.Len(), formatValue(tree.Current()))

			steps, accepted := 0, 0

			for tree.Next() > 0 {
				if *maxSteps > 0 && steps >= *maxSteps {
					break
				}

				if ctx.Err() != nil {
					return ctx.Err()
				}

				steps++

				if !tree.Simplify() {
					o.Printf("step %-3d len=%-4d -\n", steps, tree.Next())

					continue
				}

				accepted++

				o.Printf("step %-3d len=%-4d %s\n", steps, tree.Next(), formatValue(tree.Current()))
				env.Log.WithFields(logrus.Fields{"step": steps, "next": tree.Next()}).Debug("simplified")
			}

			input := tree.Input()

			o.Printf("final   len=%-4d %s\n", len(input), formatValue(tree.Current()))
			o.Printf("input   %s\n", hex.EncodeToString(input))
			o.Printf("steps=%d accepted=%d\n", steps, accepted)

			return nil
		},
	}
}
