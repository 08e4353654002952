package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/evacgrid/internal/app"
	"github.com/specialistvlad/evacgrid/internal/config"
	"github.com/specialistvlad/evacgrid/internal/hcl"
	"github.com/specialistvlad/evacgrid/internal/yamlconf"
	"github.com/stretchr/testify/require"
)

// LogsEnv switches on dumping the captured output of every harness run.
const LogsEnv = "EVACGRID_TEST_LOGS"

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output string // console lines and logs, interleaved
	Err    error
	App    *app.App
	Dir    string // temp dir the area files were written to
}

// WriteArea writes files (relative name -> HCL content) into a fresh temp
// dir and returns it.
func WriteArea(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
	return dir
}

// RunApp writes files to a temp dir, points cfg.AreaPath at it (when files is
// non-empty) and runs the app with a background context.
func RunApp(t *testing.T, cfg app.Config, files map[string]string) *HarnessResult {
	t.Helper()
	return RunAppWithContext(context.Background(), t, cfg, files)
}

// RunAppWithContext is RunApp with a caller-supplied context. A panic during
// startup is recovered and reported as Err.
func RunAppWithContext(ctx context.Context, t *testing.T, cfg app.Config, files map[string]string) *HarnessResult {
	t.Helper()

	var dir string
	if len(files) > 0 {
		dir = WriteArea(t, files)
		cfg.AreaPath = dir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	out := &SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv(LogsEnv) == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), out.String())
		}
	})

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return &HarnessResult{Output: out.String(), Err: err, Dir: dir}
	}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(out, appConfig, config.MultiLoader{hcl.NewLoader(), yamlconf.NewLoader()})
	}()

	if panicErr != nil {
		return &HarnessResult{
			Output: out.String(),
			Err:    fmt.Errorf("application startup panicked | %v", panicErr),
			Dir:    dir,
		}
	}

	runErr := testApp.Run(ctx)
	return &HarnessResult{
		Output: out.String(),
		Err:    runErr,
		App:    testApp,
		Dir:    dir,
	}
}
