package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/panelgrid/internal/engine"
	"github.com/piwi3910/panelgrid/internal/importer"
	"github.com/piwi3910/panelgrid/internal/model"
	"github.com/piwi3910/panelgrid/internal/project"
)

const quadrantsCSV = `Label,Left,Top,Right,Bottom
Top left,0,0,0.5,0.5
Top right,0.5,0,1,0.5
Bottom left,0,0.5,0.5,1
Bottom right,0.5,0.5,1,1
`

const halvesCSV = `Label,Left,Top,Right,Bottom
Left,0,0,0.5,1
Right,0.5,0,1,1
`

// execute runs the command tree with a config file in its own temp dir and
// returns stdout and the log output.
func execute(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer

	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(append([]string{"--config", configPath}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := execute(t, filepath.Join(t.TempDir(), "config.toml"), args...)
	return out, err
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// valueOf returns the last field of the first output line starting with key.
func valueOf(out, key string) string {
	for _, line := range strings.Split(ansiEscape.ReplaceAllString(out, ""), "\n") {
		if strings.HasPrefix(line, key) {
			fields := strings.Fields(line)
			return fields[len(fields)-1]
		}
	}
	return ""
}

func importOutput(t *testing.T, out string) []model.Region {
	t.Helper()
	result := importer.ImportJSONBytes([]byte(out))
	require.Empty(t, result.Errors)
	return result.Regions
}

// ─── capacity ──────────────────────────────────────────────

func TestCapacity(t *testing.T) {
	out, err := run(t, "capacity", "--width", "900", "--height", "700")
	require.NoError(t, err)

	assert.Contains(t, out, "Container 900 x 700 (landscape)")
	assert.Equal(t, "2", valueOf(out, "Rows"))
	assert.Equal(t, "2", valueOf(out, "Columns"))
	assert.Equal(t, "0.356", valueOf(out, "Min width"))
	assert.Equal(t, "0.457", valueOf(out, "Min height"))
}

func TestCapacity_DefaultsFromConfig(t *testing.T) {
	out, err := run(t, "capacity")
	require.NoError(t, err)

	assert.Contains(t, out, "Container 1280 x 800")
	assert.Equal(t, "2", valueOf(out, "Rows"))
	assert.Equal(t, "3", valueOf(out, "Columns"))
}

func TestCapacity_Portrait(t *testing.T) {
	out, err := run(t, "capacity", "--width", "1000", "--height", "2000")
	require.NoError(t, err)

	assert.Contains(t, out, "(portrait)")
	assert.Equal(t, "3", valueOf(out, "Rows"))
	assert.Equal(t, "2", valueOf(out, "Columns"))
}

// ─── tile ──────────────────────────────────────────────────

func TestTile_RowsAndCols(t *testing.T) {
	out, err := run(t, "tile", "--rows", "2", "--cols", "3")
	require.NoError(t, err)

	regions := importOutput(t, out)
	require.Len(t, regions, 6)
	assert.NoError(t, engine.VerifyFullCoverage(model.Panels(regions)))
	assert.Equal(t, "Panel 1", regions[0].Label)
}

func TestTile_FromContainer(t *testing.T) {
	out, err := run(t, "tile", "--width", "1000", "--height", "2000")
	require.NoError(t, err)
	assert.Len(t, importOutput(t, out), 6)
}

func TestTile_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiling.json")
	out, err := run(t, "tile", "--rows", "1", "--cols", "2", "-o", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Tiling with 2 panels")
	assert.Contains(t, out, path)

	result := importer.ImportFile(path)
	require.Empty(t, result.Errors)
	assert.Len(t, result.Regions, 2)
}

// ─── verify ────────────────────────────────────────────────

func TestVerify_Quadrants(t *testing.T) {
	fixture := writeFixture(t, "quadrants.csv", quadrantsCSV)

	out, err := run(t, "verify", fixture)
	require.NoError(t, err)

	assert.Contains(t, out, "4 panels cover the unit square")
	assert.Contains(t, out, "Bottom right")
}

func TestVerify_ShrunkQuadrant(t *testing.T) {
	fixture := writeFixture(t, "shrunk.csv", strings.Replace(quadrantsCSV, "Top left,0,0,0.5,0.5", "Top left,0,0,0.4,0.5", 1))

	out, err := run(t, "verify", fixture)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrCoverage)
	assert.Contains(t, out, "area check")
}

func TestVerify_ImportErrors(t *testing.T) {
	fixture := writeFixture(t, "broken.csv", "Label,Left,Top,Right,Bottom\nA,0,0,1.5,1\n")

	_, err := run(t, "verify", fixture)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import")
}

func TestVerify_MissingFile(t *testing.T) {
	_, err := run(t, "verify", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestVerify_ReportsSplittablePanels(t *testing.T) {
	fixture := writeFixture(t, "halves.csv", halvesCSV)

	out, err := run(t, "verify", fixture, "--width", "1000", "--height", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 2 panels can be split")

	out, err = run(t, "verify", fixture, "--width", "500", "--height", "500")
	require.NoError(t, err)
	assert.Contains(t, out, "No panel can be split")
}

// ─── split / absorb ────────────────────────────────────────

func TestSplit(t *testing.T) {
	fixture := writeFixture(t, "halves.csv", halvesCSV)

	out, err := run(t, "split", fixture, "0")
	require.NoError(t, err)

	regions := importOutput(t, out)
	require.Len(t, regions, 3)
	assert.Equal(t, "Left.1", regions[0].Label)
	assert.Equal(t, "Left.2", regions[1].Label)
	assert.Equal(t, "Right", regions[2].Label)
	assert.Equal(t, model.MustLTRB(0, 0, 0.5, 0.5), regions[0].Panel)
	assert.Equal(t, model.MustLTRB(0, 0.5, 0.5, 1), regions[1].Panel)
}

func TestSplit_TooSmall(t *testing.T) {
	fixture := writeFixture(t, "halves.csv", halvesCSV)

	_, err := run(t, "split", fixture, "0", "--height", "500")
	assert.ErrorIs(t, err, engine.ErrCannotSplit)
}

func TestSplit_BadIndex(t *testing.T) {
	fixture := writeFixture(t, "halves.csv", halvesCSV)

	_, err := run(t, "split", fixture, "first")
	assert.Error(t, err)

	_, err = run(t, "split", fixture, "5")
	assert.Error(t, err)
}

func TestAbsorb(t *testing.T) {
	fixture := writeFixture(t, "quadrants.csv", quadrantsCSV)

	out, err := run(t, "absorb", fixture, "0", "2")
	require.NoError(t, err)

	regions := importOutput(t, out)
	require.Len(t, regions, 3)
	assert.Equal(t, "Top left", regions[0].Label)
	assert.Equal(t, model.MustLTRB(0, 0, 0.5, 1), regions[0].Panel)
	assert.Equal(t, "Top right", regions[1].Label)
	assert.Equal(t, "Bottom right", regions[2].Label)
}

func TestAbsorb_KeepsRemainder(t *testing.T) {
	fixture := writeFixture(t, "mixed.csv", `Label,Left,Top,Right,Bottom
Small,0,0,0.5,0.5
Wide,0,0.5,1,1
Corner,0.5,0,1,0.5
`)

	out, err := run(t, "absorb", fixture, "0", "1")
	require.NoError(t, err)

	regions := importOutput(t, out)
	require.Len(t, regions, 3)
	assert.Equal(t, model.MustLTRB(0, 0, 0.5, 1), regions[0].Panel)
	assert.Equal(t, "Wide", regions[1].Label)
	assert.Equal(t, model.MustLTRB(0.5, 0.5, 1, 1), regions[1].Panel)
	assert.NoError(t, engine.VerifyFullCoverage(model.Panels(regions)))
}

func TestAbsorb_NotAdjacent(t *testing.T) {
	fixture := writeFixture(t, "quadrants.csv", quadrantsCSV)

	_, err := run(t, "absorb", fixture, "0", "3")
	assert.ErrorIs(t, err, engine.ErrNotAbsorbed)
}

// ─── neighbors ─────────────────────────────────────────────

func TestNeighbors_DOT(t *testing.T) {
	fixture := writeFixture(t, "quadrants.csv", quadrantsCSV)

	out, err := run(t, "neighbors", fixture)
	require.NoError(t, err)

	assert.Contains(t, out, "digraph neighbors {")
	assert.Contains(t, out, `n1 -> n0 [label="right-of"`)
	assert.Contains(t, out, `n2 -> n0 [label="below"`)
}

func TestNeighbors_SVGFile(t *testing.T) {
	fixture := writeFixture(t, "halves.csv", halvesCSV)
	output := filepath.Join(t.TempDir(), "neighbors.svg")

	out, err := run(t, "neighbors", fixture, "--format", "svg", "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Neighbor graph with 1 edges")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestNeighbors_UnknownFormat(t *testing.T) {
	fixture := writeFixture(t, "halves.csv", halvesCSV)

	_, err := run(t, "neighbors", fixture, "--format", "png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

// ─── config ────────────────────────────────────────────────

func TestConfigInitAndShow(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, _, err := execute(t, configPath, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default config")
	assert.FileExists(t, configPath)

	_, _, err = execute(t, configPath, "config", "init")
	assert.Error(t, err, "init should refuse to overwrite")

	_, _, err = execute(t, configPath, "config", "init", "--force")
	assert.NoError(t, err)

	out, _, err = execute(t, configPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "1280 x 800")
	assert.Equal(t, "dot", valueOf(out, "Neighbors"))
}

func TestConfig_ContainerAndVerbose(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := model.DefaultAppConfig()
	cfg.ContainerWidth = 1000
	cfg.ContainerHeight = 2000
	cfg.Verbose = true
	require.NoError(t, project.SaveAppConfig(configPath, cfg))

	out, logs, err := execute(t, configPath, "capacity")
	require.NoError(t, err)
	assert.Equal(t, "3", valueOf(out, "Rows"))
	assert.Contains(t, logs, "loaded config")
}

func TestConfig_InvalidFile(t *testing.T) {
	configPath := writeFixture(t, "config.toml", "container_width = [")

	_, _, err := execute(t, configPath, "capacity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRecentFixtures(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	first := writeFixture(t, "halves.csv", halvesCSV)
	second := writeFixture(t, "quadrants.csv", quadrantsCSV)

	_, _, err := execute(t, configPath, "verify", first)
	require.NoError(t, err)
	_, _, err = execute(t, configPath, "neighbors", second)
	require.NoError(t, err)

	cfg, err := project.LoadAppConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, []string{second, first}, cfg.RecentFixtures)
}

// ─── apply ─────────────────────────────────────────────────

func TestApply_Steps(t *testing.T) {
	fixture := writeFixture(t, "full.json", `{"regions": [{"label": "Main", "left": 0, "top": 0, "width": 1, "height": 1}]}`)

	out, err := run(t, "apply", fixture, "split:0", "split:1", "undo", "--width", "1000", "--height", "1000")
	require.NoError(t, err)

	regions := importOutput(t, out)
	require.Len(t, regions, 2)
	assert.Equal(t, "Main.1", regions[0].Label)
	assert.Equal(t, "Main.2", regions[1].Label)
}

func TestApply_SplitThenAbsorbRestoresSquare(t *testing.T) {
	fixture := writeFixture(t, "full.json", `{"regions": [{"label": "Main", "left": 0, "top": 0, "width": 1, "height": 1}]}`)

	out, err := run(t, "apply", fixture, "split:0", "absorb:0:1", "--width", "1000", "--height", "1000")
	require.NoError(t, err)

	regions := importOutput(t, out)
	require.Len(t, regions, 1)
	assert.Equal(t, model.FullPanel(), regions[0].Panel)
}

func TestApply_StopsAtFailingStep(t *testing.T) {
	fixture := writeFixture(t, "quadrants.csv", quadrantsCSV)

	_, err := run(t, "apply", fixture, "absorb:0:2", "absorb:0:2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2")
}

func TestApply_BadSteps(t *testing.T) {
	fixture := writeFixture(t, "quadrants.csv", quadrantsCSV)

	for _, step := range []string{"undo", "redo", "grow:1", "split", "absorb:0", "split:x"} {
		_, err := run(t, "apply", fixture, step)
		assert.Error(t, err, step)
	}
}

func TestConfigExportImport(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.toml")
	target := filepath.Join(dir, "target.json")
	backup := filepath.Join(dir, "backup", "panelgrid.json")

	cfg := model.DefaultAppConfig()
	cfg.ContainerWidth = 640
	cfg.NeighborFormat = "svg"
	require.NoError(t, project.SaveAppConfig(source, cfg))

	out, _, err := execute(t, source, "config", "export", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported config")

	out, _, err = execute(t, target, "config", "import", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported config")

	imported, err := project.LoadAppConfig(target)
	require.NoError(t, err)
	assert.Equal(t, 640.0, imported.ContainerWidth)
	assert.Equal(t, "svg", imported.NeighborFormat)
}
