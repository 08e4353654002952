package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/evacgrid/internal/app"
	"github.com/specialistvlad/evacgrid/internal/render"
	"github.com/specialistvlad/evacgrid/internal/selector"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("evacgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
EvacGrid - Evacuation route planning over hazard zones, routes and rescue centers.

Usage:
  evacgrid [options] [AREA_PATH]

Arguments:
  AREA_PATH
    Path to a single .hcl or .yaml file, or a directory containing them.
    Without it the built-in seed area is used.

Examples:
  evacgrid
  evacgrid --start RiskArea_2 --dest RescueCenter_1,RescueCenter_2
  evacgrid --seed --area extra-nodes.hcl --selection weight

Options:
`)
		flagSet.PrintDefaults()
	}

	areaFlag := flagSet.String("area", "", "Path to the area file or directory.")
	aFlag := flagSet.String("a", "", "Path to the area file or directory (shorthand).")
	seedFlag := flagSet.Bool("seed", false, "Start from the built-in seed area. Implied when no area path is given.")
	startFlag := flagSet.String("start", "", "Node to plan routes from.")
	destFlag := flagSet.String("dest", "", "Comma-separated list of destination nodes.")
	selectionFlag := flagSet.String("selection", "nodes", "How the highlighted route is chosen. Options: 'nodes' or 'weight'.")
	bonusEdgeFlag := flagSet.Bool("bonus-edge", true, "Re-apply the last distance entry when inserting a rescue center.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	renderURLFlag := flagSet.String("render-url", "", "socket.io endpoint of an external graph viewer. Empty disables it.")
	renderEventFlag := flagSet.String("render-event", render.DefaultRenderEvent, "Event name the render request is emitted on.")
	renderTimeoutFlag := flagSet.Duration("render-timeout", render.DefaultRenderTimeout, "How long to wait for the viewer to acknowledge.")
	exportFlag := flagSet.String("export", "", "Write the final area and query to this .hcl file.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *areaFlag != "" {
		path = *areaFlag
	} else if *aFlag != "" {
		path = *aFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Area path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	selection, err := selector.ParseMode(*selectionFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid selection: " + err.Error()}
	}
	slog.Debug("CLI parameter validation complete.")

	var dests []string
	if *destFlag != "" {
		dests = strings.Split(*destFlag, ",")
	}

	config, err := app.NewConfig(app.Config{
		AreaPath:      path,
		Seed:          *seedFlag || path == "",
		Start:         *startFlag,
		Destinations:  dests,
		Selection:     selection,
		BonusEdge:     *bonusEdgeFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		RenderURL:     *renderURLFlag,
		RenderEvent:   *renderEventFlag,
		RenderTimeout: *renderTimeoutFlag,
		ExportPath:    *exportFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
