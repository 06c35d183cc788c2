package restorerevert_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/restorerevert/pkg/restorerevert"
	"github.com/arthur-debert/restorerevert/pkg/restorerevert/filesystem"
	"github.com/arthur-debert/restorerevert/pkg/restorerevert/testutil"
)

// captureLogs routes the package logger into a buffer for the rest of the test.
func captureLogs(t *testing.T, level zerolog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restorerevert.SetLogger(restorerevert.NewLogger(&buf, level))
	t.Cleanup(func() { restorerevert.SetLogger(zerolog.Nop()) })
	return &buf
}

func TestLogger_DiscardsUntilSet(t *testing.T) {
	if level := restorerevert.Logger().GetLevel(); level != zerolog.Disabled {
		t.Fatalf("Expected the default logger to be disabled, got level %v", level)
	}

	buf := captureLogs(t, zerolog.InfoLevel)
	restorerevert.Logger().Info().Str("root", "/r").Msg("starting revert")

	output := buf.String()
	for _, want := range []string{"INF", "starting revert", "root=/r", "lib=restorerevert"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected log output to contain %q, got: %s", want, output)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected zerolog.Level
		wantErr  bool
	}{
		{"trace", zerolog.TraceLevel, false},
		{" DEBUG ", zerolog.DebugLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"", zerolog.NoLevel, true},
		{"loud", zerolog.NoLevel, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			level, err := restorerevert.ParseLogLevel(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got level %v", tc.input, level)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tc.input, err)
			}
			if level != tc.expected {
				t.Errorf("Expected level %v, got %v", tc.expected, level)
			}
		})
	}
}

func TestWalker_Diagnostics(t *testing.T) {
	buf := captureLogs(t, zerolog.TraceLevel)

	tree := testutil.NewMemTree(t, "/r")
	tree.WriteFile("a.txt", "X")
	tree.WriteFile("a.txt.backup.20180101", "Y")
	tree.WriteFile("b.txt.backup.20200202", "orphan")

	walker := restorerevert.NewWalker(tree.FileSystem(), restorerevert.Policy{},
		restorerevert.WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
	if _, err := walker.Walk("/r"); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"DBG descending",
		"dir=/r",
		"TRC entry",
		"path=/r/a.txt",
		"DBG pair admitted",
		"original=/r/a.txt",
		"date=20180101",
		"DBG candidate skipped",
		"backup=/r/b.txt.backup.20200202",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected walker diagnostics to contain %q, got:\n%s", want, output)
		}
	}
}

func TestWalker_QuietAtWarnLevel(t *testing.T) {
	buf := captureLogs(t, zerolog.WarnLevel)

	tree := testutil.NewMemTree(t, "/r")
	tree.WriteFile("b.txt.backup.20200202", "orphan")

	var errOut bytes.Buffer
	walker := restorerevert.NewWalker(tree.FileSystem(), restorerevert.Policy{},
		restorerevert.WithOutput(&bytes.Buffer{}, &errOut))
	if _, err := walker.Walk("/r"); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	if buf.Len() != 0 {
		t.Errorf("Expected no diagnostics at warn level, got: %s", buf.String())
	}
	if !strings.HasPrefix(errOut.String(), "WARN: ") {
		t.Errorf("Expected the report warning on errOut, got: %q", errOut.String())
	}
}

func TestExecutor_Diagnostics(t *testing.T) {
	t.Run("steps logged at info", func(t *testing.T) {
		buf := captureLogs(t, zerolog.InfoLevel)
		tree, pair := pairTree(t)

		executor := restorerevert.NewExecutor(tree.FileSystem(),
			restorerevert.WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
		if err := executor.Apply(pair, false); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}

		output := buf.String()
		if got := strings.Count(output, "INF swap step done"); got != 3 {
			t.Errorf("Expected 3 swap step events, got %d:\n%s", got, output)
		}
		for _, step := range []string{"step=stash", "step=promote", "step=discard"} {
			if !strings.Contains(output, step) {
				t.Errorf("Expected %q in diagnostics, got:\n%s", step, output)
			}
		}
	})

	t.Run("failure logged at error", func(t *testing.T) {
		buf := captureLogs(t, zerolog.InfoLevel)
		tree, pair := pairTree(t)
		failing := &testutil.FailingFs{Fs: tree.Afero(), FailOp: "remove", FailPattern: "_reverted"}

		executor := restorerevert.NewExecutor(filesystem.New(failing),
			restorerevert.WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
		if err := executor.Apply(pair, false); err == nil {
			t.Fatal("Expected Apply to fail")
		}

		output := buf.String()
		if !strings.Contains(output, "ERR swap failed") || !strings.Contains(output, "step=discard") {
			t.Errorf("Expected an error event for the discard step, got:\n%s", output)
		}
	})

	t.Run("simulate logs nothing", func(t *testing.T) {
		buf := captureLogs(t, zerolog.InfoLevel)
		tree, pair := pairTree(t)

		executor := restorerevert.NewExecutor(filesystem.ReadOnly(tree.FileSystem()),
			restorerevert.WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
		if err := executor.Apply(pair, true); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("Expected no step events when simulating, got: %s", buf.String())
		}
	})
}
