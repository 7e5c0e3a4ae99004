package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/arbshrink/internal/sample"
	"github.com/calvinalkan/arbshrink/pkg/arbshrink/runner"
)

var (
	errKindRequired   = errors.New("--kind is required")
	errHexAndSeed     = errors.New("--hex cannot be combined with --seed or --size")
	errUnexpectedArg  = errors.New("unexpected arguments")
	errSeedNotAllowed = errors.New("--seed 0 picks a random seed; omit it instead")
)

func errUnexpectedArgs(args []string) error {
	return fmt.Errorf("%w: %s", errUnexpectedArg, strings.Join(args, " "))
}

// treeFlags are the flags trace and repl share for choosing a tree.
type treeFlags struct {
	kind   string
	hexIn  string
	seed   int64
	size   int
	fs     *flag.FlagSet
	origin string
}

func newTreeFlags(name string) *treeFlags {
	tf := &treeFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}

	tf.fs.StringVarP(&tf.kind, "kind", "k", "", "sample kind (see 'arbtrace kinds')")
	tf.fs.StringVar(&tf.hexIn, "hex", "", "hex-encoded buffer to build the tree from")
	tf.fs.Int64Var(&tf.seed, "seed", 0, "seed for a generated buffer (default: config seed)")
	tf.fs.IntVar(&tf.size, "size", 0, "generated buffer size (default: per kind)")

	return tf
}

// build returns the tree selected by the flags. Generated buffers come from a
// runner, so malformed draws are retried within the configured reject budget.
func (tf *treeFlags) build(env *Env) (sample.Tree, error) {
	if tf.kind == "" {
		return sample.Tree{}, errKindRequired
	}

	kind, err := sample.Lookup(tf.kind)
	if err != nil {
		return sample.Tree{}, err
	}

	if tf.hexIn != "" {
		if tf.fs.Changed("seed") || tf.fs.Changed("size") {
			return sample.Tree{}, errHexAndSeed
		}

		data, decodeErr := hex.DecodeString(strings.TrimPrefix(tf.hexIn, "0x"))
		if decodeErr != nil {
			return sample.Tree{}, fmt.Errorf("--hex: %w", decodeErr)
		}

		tf.origin = fmt.Sprintf("kind=%s bytes=%d (from --hex)", kind.Name, len(data))

		tree, buildErr := kind.NewTree(data)
		if buildErr != nil {
			return sample.Tree{}, fmt.Errorf("building %s from --hex: %w", kind.Name, buildErr)
		}

		return tree, nil
	}

	cfg := env.Config
	if tf.fs.Changed("seed") {
		if tf.seed == 0 {
			return sample.Tree{}, errSeedNotAllowed
		}

		cfg.Seed = tf.seed
	}

	r := runner.New(cfg, runner.WithLogger(env.Log))

	tree, err := kind.Generate(r, tf.size)
	if err != nil {
		return sample.Tree{}, fmt.Errorf("generating %s: %w", kind.Name, err)
	}

	tf.origin = fmt.Sprintf("kind=%s bytes=%d seed=%d rejects=%d", kind.Name, tree.Len(), r.Seed(), r.LocalRejects())

	return tree, nil
}

func formatValue(v any) string {
	return fmt.Sprintf("%+v", v)
}
