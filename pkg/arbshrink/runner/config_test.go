package runner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink/runner"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "arbshrink.json")

	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}

func Test_LoadConfig_Returns_Defaults_When_No_Sources(t *testing.T) {
	t.Parallel()

	cfg, err := runner.LoadConfig(runner.LoadConfigInput{})
	require.NoError(t, err)

	if diff := cmp.Diff(runner.DefaultConfig(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func Test_LoadConfig_Merges_File_When_Comments_Present(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{
		// fewer cases on CI
		"cases": 32,
		"seed": 0,
		"max_shrink_iters": 10, /* tight */
		"regressions": "testdata/regressions.json",
	}`)

	cfg, err := runner.LoadConfig(runner.LoadConfigInput{ConfigPath: path})
	require.NoError(t, err)

	want := runner.DefaultConfig()
	want.Cases = 32
	want.MaxShrinkIters = 10
	want.Regressions = "testdata/regressions.json"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func Test_LoadConfig_Prefers_Env_When_File_And_Env_Set(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{"cases": 32, "log_level": "info"}`)

	cfg, err := runner.LoadConfig(runner.LoadConfigInput{
		Env: map[string]string{
			runner.EnvConfig:          path,
			runner.EnvCases:           "7",
			runner.EnvSeed:            "-42",
			runner.EnvMaxLocalRejects: "3",
			runner.EnvLogLevel:        "debug",
		},
	})
	require.NoError(t, err)

	require.Equal(t, 7, cfg.Cases)
	require.Equal(t, int64(-42), cfg.Seed)
	require.Equal(t, 3, cfg.MaxLocalRejects)
	require.Equal(t, "debug", cfg.LogLevel)
}

func Test_LoadConfig_Returns_Error_When_Input_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input func(t *testing.T) runner.LoadConfigInput
		want  error
	}{
		{
			name: "MissingExplicitFile",
			input: func(t *testing.T) runner.LoadConfigInput {
				return runner.LoadConfigInput{ConfigPath: filepath.Join(t.TempDir(), "nope.json")}
			},
			want: runner.ErrConfigFileNotFound,
		},
		{
			name: "MalformedFile",
			input: func(t *testing.T) runner.LoadConfigInput {
				return runner.LoadConfigInput{ConfigPath: writeConfig(t, `{"cases": `)}
			},
			want: runner.ErrConfigInvalid,
		},
		{
			name: "ZeroCases",
			input: func(t *testing.T) runner.LoadConfigInput {
				return runner.LoadConfigInput{ConfigPath: writeConfig(t, `{"cases": 0}`)}
			},
			want: runner.ErrConfigInvalid,
		},
		{
			name: "NonNumericEnv",
			input: func(*testing.T) runner.LoadConfigInput {
				return runner.LoadConfigInput{Env: map[string]string{runner.EnvMaxShrinkIters: "lots"}}
			},
			want: runner.ErrConfigInvalid,
		},
		{
			name: "BadSeed",
			input: func(*testing.T) runner.LoadConfigInput {
				return runner.LoadConfigInput{Env: map[string]string{runner.EnvSeed: "0x"}}
			},
			want: runner.ErrConfigInvalid,
		},
		{
			name: "UnknownLogLevel",
			input: func(*testing.T) runner.LoadConfigInput {
				return runner.LoadConfigInput{Env: map[string]string{runner.EnvLogLevel: "loud"}}
			},
			want: runner.ErrConfigInvalid,
		},
		{
			name: "NegativeRejects",
			input: func(*testing.T) runner.LoadConfigInput {
				return runner.LoadConfigInput{Env: map[string]string{runner.EnvMaxGlobalRejects: "-1"}}
			},
			want: runner.ErrConfigInvalid,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := runner.LoadConfig(testCase.input(t))
			require.ErrorIs(t, err, testCase.want)
		})
	}
}
