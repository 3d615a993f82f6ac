package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/iconsort/internal/config"
	"github.com/backmassage/iconsort/internal/logging"
	"github.com/backmassage/iconsort/internal/naming"
	"github.com/backmassage/iconsort/internal/planner"
	"github.com/backmassage/iconsort/internal/term"
)

const swordsAndSkulls = `<h3 id="swords">Swords</h3>` +
	`<a href="/a/b/broadsword.html">Broadsword</a>` +
	`<a href="/a/b/shortsword.html">Shortsword</a>` +
	`<h3 id="skulls">Skulls</h3>` +
	`<a href="/a/b/skull.html">Skull</a>`

// fakeSource serves fixed markup and records how often it was asked.
type fakeSource struct {
	markup string
	err    error
	calls  int
}

func (f *fakeSource) Fetch(ctx context.Context, url string) (string, error) {
	f.calls++
	return f.markup, f.err
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.SourceDir = t.TempDir()
	cfg.DestDir = filepath.Join(t.TempDir(), "final")
	cfg.MinMappings = 3
	cfg.ColorMode = config.ColorNever
	return &cfg
}

func newTestLogger(t *testing.T, cfg *config.Config) (*logging.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log, err := logging.NewLoggerTo(cfg, &buf, &buf)
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log, &buf
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

// markupWithKeys builds a single-category page with n distinct icon links.
func markupWithKeys(n int) string {
	var sb strings.Builder
	sb.WriteString(`<h3 id="misc">Misc</h3>`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, `<a href="/lorc/icon-%d.html">`, i)
	}
	return sb.String()
}

// --- Discover ---

func TestDiscover_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "skull.svg", "")
	writeFile(t, dir, "axe.svg", "")
	writeFile(t, dir, "readme.txt", "")
	writeFile(t, dir, "LOUD.SVG", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.svg"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	writeFile(t, filepath.Join(dir, "nested"), "deep.svg", "")

	files, err := Discover(dir, ".svg")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "axe.svg"),
		filepath.Join(dir, "skull.svg"),
	}, files)
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), ".svg")
	assert.Error(t, err)
}

// --- copyFile ---

func TestCopyFile_PreservesModeAndTimes(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "skull.svg", "<svg/>")
	require.NoError(t, os.Chmod(src, 0o600))
	atime := time.Date(2021, 7, 1, 8, 0, 0, 0, time.UTC)
	mtime := time.Date(2020, 3, 14, 15, 9, 26, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, atime, mtime))

	dst := filepath.Join(dir, "copy.svg")
	n, err := copyFile(src, dst)
	require.NoError(t, err)

	assert.Equal(t, int64(len("<svg/>")), n)
	assert.Equal(t, "<svg/>", readFile(t, dst))
	fi, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	assert.True(t, fi.ModTime().Equal(mtime), "mtime %v, want %v", fi.ModTime(), mtime)
	if got := accessTime(fi); !got.IsZero() {
		assert.True(t, got.Equal(atime), "atime %v, want %v", got, atime)
	}
}

func TestCopyFile_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.svg", "new")
	dst := writeFile(t, dir, "b.svg", "old and longer")

	_, err := copyFile(src, dst)
	require.NoError(t, err)
	assert.Equal(t, "new", readFile(t, dst))
}

// --- Run ---

func TestRun_EndToEndExample(t *testing.T) {
	cfg := newTestConfig(t)
	log, _ := newTestLogger(t, cfg)
	writeFile(t, cfg.SourceDir, "broadsword.svg", "b")
	writeFile(t, cfg.SourceDir, "shortsword_copy.svg", "ss")
	writeFile(t, cfg.SourceDir, "skull_1.svg", "sk1")
	writeFile(t, cfg.SourceDir, "axe.svg", "axe!")
	writeFile(t, cfg.SourceDir, "notes.txt", "ignored")

	stats, err := Run(context.Background(), cfg, log, &fakeSource{markup: swordsAndSkulls})
	require.NoError(t, err)

	for rel, content := range map[string]string{
		"swords/broadsword.svg":      "b",
		"swords/shortsword_copy.svg": "ss",
		"skulls/skull_1.svg":         "sk1",
		"uncategorized/axe.svg":      "axe!",
	} {
		assert.Equal(t, content, readFile(t, filepath.Join(cfg.DestDir, filepath.FromSlash(rel))), rel)
	}
	assert.NoFileExists(t, filepath.Join(cfg.DestDir, "uncategorized", "notes.txt"))

	assert.NotEmpty(t, stats.RunID)
	assert.Equal(t, 3, stats.Mapped)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 4, stats.Copied)
	assert.Equal(t, 1, stats.Uncategorized)
	assert.Equal(t, 0, stats.Renamed)
	assert.Equal(t, int64(10), stats.BytesCopied)
}

func TestRun_InsufficientTaxonomyCopiesNothing(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.MinMappings = 100
	log, buf := newTestLogger(t, cfg)
	writeFile(t, cfg.SourceDir, "skull.svg", "x")

	stats, err := Run(context.Background(), cfg, log, &fakeSource{markup: markupWithKeys(99)})

	require.ErrorIs(t, err, ErrInsufficientTaxonomy)
	assert.Equal(t, 0, stats.Copied)
	assert.NoDirExists(t, cfg.DestDir)
	assert.Contains(t, buf.String(), "minimum 100")
}

func TestRun_ThresholdIsInclusive(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.MinMappings = 100
	log, _ := newTestLogger(t, cfg)
	writeFile(t, cfg.SourceDir, "icon-7_copy.svg", "x")

	stats, err := Run(context.Background(), cfg, log, &fakeSource{markup: markupWithKeys(100)})

	require.NoError(t, err)
	assert.Equal(t, 100, stats.Mapped)
	assert.FileExists(t, filepath.Join(cfg.DestDir, "misc", "icon-7_copy.svg"))
}

func TestRun_SourceMissingSkipsFetch(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.SourceDir = filepath.Join(cfg.SourceDir, "missing")
	log, _ := newTestLogger(t, cfg)
	src := &fakeSource{markup: swordsAndSkulls}

	_, err := Run(context.Background(), cfg, log, src)

	require.ErrorIs(t, err, ErrSourceMissing)
	assert.Equal(t, 0, src.calls)
	assert.NoDirExists(t, cfg.DestDir)
}

func TestRun_SourceIsAFile(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.SourceDir = writeFile(t, cfg.SourceDir, "file.svg", "")
	log, _ := newTestLogger(t, cfg)

	_, err := Run(context.Background(), cfg, log, &fakeSource{markup: swordsAndSkulls})
	assert.ErrorIs(t, err, ErrSourceMissing)
}

func TestRun_FetchFailure(t *testing.T) {
	cfg := newTestConfig(t)
	log, buf := newTestLogger(t, cfg)
	writeFile(t, cfg.SourceDir, "skull.svg", "x")
	boom := errors.New("connection reset")

	stats, err := Run(context.Background(), cfg, log, &fakeSource{err: boom})

	require.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, stats.Copied)
	assert.NoDirExists(t, cfg.DestDir)
	assert.Contains(t, buf.String(), "Cannot fetch catalog")
}

func TestRun_CollisionsWithExistingDestination(t *testing.T) {
	cfg := newTestConfig(t)
	log, buf := newTestLogger(t, cfg)
	writeFile(t, cfg.SourceDir, "skull.svg", "fresh")
	skulls := filepath.Join(cfg.DestDir, "skulls")
	require.NoError(t, os.MkdirAll(skulls, 0o755))
	writeFile(t, skulls, "skull.svg", "original")

	stats, err := Run(context.Background(), cfg, log, &fakeSource{markup: swordsAndSkulls})
	require.NoError(t, err)

	assert.Equal(t, "original", readFile(t, filepath.Join(skulls, "skull.svg")))
	assert.Equal(t, "fresh", readFile(t, filepath.Join(skulls, "skull_dup.svg")))
	assert.Equal(t, 1, stats.Renamed)
	assert.Contains(t, buf.String(), "skull_dup.svg")
}

func TestRun_DupTakenIsOverwritten(t *testing.T) {
	cfg := newTestConfig(t)
	log, _ := newTestLogger(t, cfg)
	writeFile(t, cfg.SourceDir, "skull.svg", "third")
	skulls := filepath.Join(cfg.DestDir, "skulls")
	require.NoError(t, os.MkdirAll(skulls, 0o755))
	writeFile(t, skulls, "skull.svg", "first")
	writeFile(t, skulls, "skull_dup.svg", "second")

	_, err := Run(context.Background(), cfg, log, &fakeSource{markup: swordsAndSkulls})
	require.NoError(t, err)

	assert.Equal(t, "first", readFile(t, filepath.Join(skulls, "skull.svg")))
	assert.Equal(t, "third", readFile(t, filepath.Join(skulls, "skull_dup.svg")))
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.DryRun = true
	log, buf := newTestLogger(t, cfg)
	writeFile(t, cfg.SourceDir, "broadsword.svg", "b")
	writeFile(t, cfg.SourceDir, "axe.svg", "a")

	stats, err := Run(context.Background(), cfg, log, &fakeSource{markup: swordsAndSkulls})
	require.NoError(t, err)

	assert.NoDirExists(t, cfg.DestDir)
	assert.Equal(t, 2, stats.Copied)
	assert.Equal(t, int64(0), stats.BytesCopied)
	assert.Contains(t, buf.String(), "Plan: 2 files into 2 categories")
	assert.Contains(t, buf.String(), "uncategorized")
}

func TestRun_ProgressMilestones(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.ProgressEvery = 2
	log, buf := newTestLogger(t, cfg)
	for _, n := range []string{"a.svg", "b.svg", "c.svg", "d.svg", "e.svg"} {
		writeFile(t, cfg.SourceDir, n, n)
	}

	_, err := Run(context.Background(), cfg, log, &fakeSource{markup: swordsAndSkulls})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Copied 2 files...")
	assert.Contains(t, out, "Copied 4 files...")
	assert.NotContains(t, out, "Copied 5 files...")
	assert.Contains(t, out, "Done: 5 files copied into "+cfg.DestDir)
}

func TestRun_VerboseLogsKeyAndRule(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Verbose = true
	log, buf := newTestLogger(t, cfg)
	writeFile(t, cfg.SourceDir, "shortsword_copy.svg", "s")

	_, err := Run(context.Background(), cfg, log, &fakeSource{markup: swordsAndSkulls})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `shortsword_copy.svg -> key "shortsword" (copy-marker) -> swords`)
}

func TestRun_MappingOut(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.MappingOut = filepath.Join(t.TempDir(), "out", "mapping.yaml")
	log, _ := newTestLogger(t, cfg)

	stats, err := Run(context.Background(), cfg, log, &fakeSource{markup: swordsAndSkulls})
	require.NoError(t, err)

	out := readFile(t, cfg.MappingOut)
	require.NotEmpty(t, stats.RunID)
	assert.Contains(t, out, "run_id: "+stats.RunID)
	assert.Contains(t, out, "icons: 3")
	assert.Contains(t, out, "swords:")
	assert.Contains(t, out, "- broadsword")
}

func TestRun_CancelledStopsBeforeFirstCopy(t *testing.T) {
	cfg := newTestConfig(t)
	log, _ := newTestLogger(t, cfg)
	writeFile(t, cfg.SourceDir, "skull.svg", "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := Run(ctx, cfg, log, &fakeSource{markup: swordsAndSkulls})

	require.ErrorIs(t, err, ErrInterrupted)
	assert.Equal(t, 0, stats.Copied)
	assert.NoFileExists(t, filepath.Join(cfg.DestDir, "skulls", "skull.svg"))
}

func TestRun_RunIDMatchesLogAndMappingDump(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.LogFile = filepath.Join(t.TempDir(), "iconsort.log")
	cfg.MappingOut = filepath.Join(t.TempDir(), "mapping.yaml")
	log, buf := newTestLogger(t, cfg)

	stats, err := Run(context.Background(), cfg, log, &fakeSource{markup: swordsAndSkulls})
	require.NoError(t, err)
	require.NoError(t, log.Close())

	var doc struct {
		RunID string `yaml:"run_id"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(readFile(t, cfg.MappingOut)), &doc))
	assert.Equal(t, stats.RunID, doc.RunID)

	logged := readFile(t, cfg.LogFile)
	assert.Contains(t, logged, "Run "+doc.RunID+" started")
	assert.Contains(t, logged, "Run ID:            "+doc.RunID)
	assert.Contains(t, buf.String(), "Run "+doc.RunID+" started")

	second, err := Run(context.Background(), cfg, log, &fakeSource{markup: swordsAndSkulls})
	require.NoError(t, err)
	assert.NotEqual(t, stats.RunID, second.RunID)
}

func TestRun_DryRunProgressSaysPlanned(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.DryRun = true
	cfg.ProgressEvery = 1
	log, buf := newTestLogger(t, cfg)
	writeFile(t, cfg.SourceDir, "skull.svg", "x")

	_, err := Run(context.Background(), cfg, log, &fakeSource{markup: swordsAndSkulls})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Planned 1 files...")
	assert.NotContains(t, buf.String(), "Copied 1 files...")
}

func TestRun_CategoryCannotEscapeDestination(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.MinMappings = 1
	log, _ := newTestLogger(t, cfg)
	writeFile(t, cfg.SourceDir, "skull.svg", "x")
	writeFile(t, cfg.SourceDir, "bone.svg", "y")
	markup := `<h3 id="../x">X</h3><a href="/a/skull.html">` +
		`<h3 id="../../escaped">E</h3><a href="/a/bone.html">`

	stats, err := Run(context.Background(), cfg, log, &fakeSource{markup: markup})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Uncategorized)
	assert.FileExists(t, filepath.Join(cfg.DestDir, "uncategorized", "skull.svg"))
	assert.FileExists(t, filepath.Join(cfg.DestDir, "uncategorized", "bone.svg"))
	parent := filepath.Dir(cfg.DestDir)
	assert.NoFileExists(t, filepath.Join(parent, "x", "skull.svg"))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(parent), "escaped", "bone.svg"))
}

func TestLogPlan_PaintsCategoriesAndFallback(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.ColorMode = config.ColorAlways
	log, buf := newTestLogger(t, cfg)
	t.Cleanup(func() { term.Configure(config.ColorNever) })

	logPlan(log, planner.Summary{
		Files:         3,
		Uncategorized: 1,
		Renamed:       1,
		Categories: []planner.CategoryCount{
			{Category: "swords", Files: 2},
			{Category: naming.DefaultCategory, Files: 1},
		},
	})

	out := buf.String()
	assert.Contains(t, out, string(term.Category)+"swords")
	assert.Contains(t, out, string(term.Fallback)+naming.DefaultCategory)
	assert.Contains(t, out, term.Fallback.Paint(naming.DupMarker)+" marker")
}
