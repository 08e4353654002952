package integration_tests

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/evacgrid/internal/app"
	"github.com/specialistvlad/evacgrid/internal/cli"
	"github.com/specialistvlad/evacgrid/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestCLI_MergesHCL_FromDirectoryPath validates that the loader discovers and
// merges all area files from a directory, including nested ones.
func TestCLI_MergesHCL_FromDirectoryPath(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"a_hazards.hcl": `
			node "Fire" { kind = "risk_area" }
		`,
		"b_routes/roads.hcl": `
			node "Road" {
				kind = "evacuation_route"
				link "Fire" { distance = 2 }
			}
		`,
		"c_centers.hcl": `
			node "Stadium" {
				kind = "rescue_center"
				link "Road" { distance = 3 }
			}
			query "main" {
				start        = "Fire"
				destinations = ["Stadium"]
			}
		`,
	}

	// --- Act ---
	result := testutil.RunApp(t, app.Config{}, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertRoute(t, result, "Fire", "Stadium", "Fire", "Road", "Stadium")
	testutil.AssertHighlight(t, result, "Stadium")
}

// TestCLI_ParsedConfigDrivesApp runs the app with a config produced by the
// flag parser, as the entrypoint does.
func TestCLI_ParsedConfigDrivesApp(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var usage bytes.Buffer
	cfg, shouldExit, err := cli.Parse([]string{
		"--start", "RiskArea_2",
		"--dest", "RescueCenter_2, RescueCenter_1",
		"--selection", "weight",
		"--log-level", "debug",
	}, &usage)
	require.NoError(t, err)
	require.False(t, shouldExit)

	// --- Act ---
	result := testutil.RunApp(t, *cfg, nil)

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertRoute(t, result, "RiskArea_2", "RescueCenter_2", "RiskArea_2", "Route_2", "RescueCenter_2")
	testutil.AssertRoute(t, result, "RiskArea_2", "RescueCenter_1", "RiskArea_2", "Route_1", "RescueCenter_1")
	// 18 vs 17: by weight the second destination wins.
	testutil.AssertHighlight(t, result, "RescueCenter_1")
	require.Contains(t, result.Output, "(by weight)")
}

func TestCLI_DisplaysHelp(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := cli.Parse([]string{"--help"}, &out)

	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
	require.Contains(t, out.String(), "-render-url")
}
