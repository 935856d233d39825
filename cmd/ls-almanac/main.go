// Command ls-almanac is a terminal almanac for the Sun, Moon, and planets.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/geodesy"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/ui"
)

// CLI flags for headless mode
var (
	almanacMode   bool
	riseSetMode   bool
	bodyName      string
	jsonPath      string
	watchInterval time.Duration
	fromSpec      string
	toSpec        string
	strictGeo     bool
)

func main() {
	lat := flag.Float64("lat", 51.4769, "Observer latitude in degrees (north positive)")
	lon := flag.Float64("lon", 0.0, "Observer longitude in degrees (east positive)")
	alt := flag.Float64("alt", 0, "Observer altitude above the ellipsoid in metres")
	ellipsoid := flag.String("ellipsoid", "WGS84", "Reference ellipsoid (WGS84, GRS80, NAD27, Airy1830, International1924)")
	algorithm := flag.String("geo-algorithm", "vincenty", "Geodesic algorithm (haversine, vincenty, andoyer)")
	atSpec := flag.String("at", "", "Freeze the clock at a time (RFC3339 or 2006-01-02T15:04)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&almanacMode, "almanac", false, "Print the almanac table instead of the TUI")
	flag.BoolVar(&riseSetMode, "riseset", false, "Print rise/transit/set for one body (see -body)")
	flag.StringVar(&bodyName, "body", "sun", "Body for -riseset")
	flag.StringVar(&jsonPath, "json", "", "Export JSON snapshot to file (use - for stdout)")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 30s)")
	flag.StringVar(&fromSpec, "from", "", "Geodesic start as lat,lon degrees (enables distance mode with -to)")
	flag.StringVar(&toSpec, "to", "", "Geodesic end as lat,lon degrees")
	flag.BoolVar(&strictGeo, "strict-geodesic", false, "Fail instead of falling back when the geodesic solver does not converge")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Standalone geodesic mode needs no observation at all.
	if fromSpec != "" || toSpec != "" {
		if err := runDistance(*ellipsoid, *algorithm); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg := state.DefaultConfig()
	cfg.LatitudeDeg = *lat
	cfg.LongitudeDeg = *lon
	cfg.AltitudeM = *alt
	cfg.Ellipsoid = *ellipsoid
	cfg.Algorithm = *algorithm

	session, err := state.NewManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *atSpec != "" {
		at, err := parseTimeFlag(*atSpec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		session.Freeze(at)
	}

	headless := almanacMode || riseSetMode || jsonPath != ""
	if !headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Debug("stdout is not a terminal, falling back to -almanac")
		almanacMode = true
		headless = true
	}

	if headless {
		runHeadless(ctx, session, logger)
		return
	}

	p := tea.NewProgram(ui.New(session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless handles all non-TUI output modes.
func runHeadless(ctx context.Context, session *state.Manager, logger *logging.Logger) {
	outputOnce := func() error {
		start := time.Now()
		snap := session.Snapshot()
		logger.Debug("snapshot computed in %v", time.Since(start).Round(time.Millisecond))

		if jsonPath != "" {
			export := state.ExportSnapshot(snap)
			if jsonPath == "-" {
				if err := export.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(jsonPath)
				if err != nil {
					return fmt.Errorf("create JSON file: %w", err)
				}
				defer f.Close()
				if err := export.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
			}
		}

		if riseSetMode {
			kind, err := ephem.ParseKind(bodyName)
			if err != nil {
				return err
			}
			state.WriteRiseSet(os.Stdout, snap, kind)
		}

		if almanacMode {
			state.WriteAlmanac(os.Stdout, snap)
		}
		return nil
	}

	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Println()
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// runDistance solves the inverse geodesic between -from and -to.
func runDistance(ellipsoidName, algorithmName string) error {
	if fromSpec == "" || toSpec == "" {
		return fmt.Errorf("distance mode needs both -from and -to")
	}
	from, err := parsePosition(fromSpec)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	to, err := parsePosition(toSpec)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}

	ell, ok := geodesy.Ellipsoids[strings.ToLower(ellipsoidName)]
	if !ok {
		return fmt.Errorf("unknown ellipsoid %q", ellipsoidName)
	}
	alg, err := geodesy.ParseAlgorithm(algorithmName)
	if err != nil {
		return err
	}
	calc := geodesy.Calculator{Ellipsoid: ell, Algorithm: alg, Strict: strictGeo}

	dist, fwd, back, err := calc.Inverse(from, to)
	if err != nil {
		return err
	}

	fmt.Printf("from     %s\n", from)
	fmt.Printf("to       %s\n", to)
	fmt.Printf("distance %s (%s on %s)\n", dist, alg, ell.Name)
	fmt.Printf("azimuth  %.4f° forward, %.4f° back\n",
		fwd.Degrees(), back.Degrees())
	return nil
}

// parsePosition reads "lat,lon" in degrees.
func parsePosition(spec string) (geodesy.Position, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 2 {
		return geodesy.Position{}, fmt.Errorf("want lat,lon degrees, got %q", spec)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geodesy.Position{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geodesy.Position{}, fmt.Errorf("longitude: %w", err)
	}
	return geodesy.NewPositionDegrees(lat, lon)
}

// parseTimeFlag accepts RFC3339 or a few shorter layouts, all UTC.
func parseTimeFlag(spec string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, spec, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", spec)
}
