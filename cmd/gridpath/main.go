// gridpath is a CLI for finding and animating shortest paths on city grids.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gridpath/internal/config"
	"github.com/Faultbox/gridpath/internal/logger"
	"github.com/Faultbox/gridpath/internal/pathfinding"
	"github.com/Faultbox/gridpath/internal/render"
	"github.com/Faultbox/gridpath/internal/walker"
	"github.com/Faultbox/gridpath/pkg/gridfile"
	"github.com/Faultbox/gridpath/pkg/gridgen"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "find":
		err = cmdFind(os.Stdout, args)
	case "gen", "generate":
		err = cmdGen(os.Stdout, args)
	case "walk":
		err = cmdWalk(os.Stdout, args)
	case "step":
		err = cmdStep(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gridpath - A* shortest paths on city grids

Usage:
  gridpath <command> [options]

Commands:
  find <file> [-start r,c] [-end r,c]   Find and print the shortest path
  gen [-size N] [-seed S] [-o file]     Generate a random grid
  walk <file> [-interval 500ms]         Animate a walker along the path
  step <file>                           Print every A* expansion

Grid files:
  .txt   rows of '.' (road), '#' (building), 'S' start, 'E' end
  .grid  packed binary grid
  .yaml  scenario with grid rows and start/end coordinates

Examples:
  gridpath gen -size 20 -seed 42 -o city.txt
  gridpath find city.txt -start 0,0 -end 19,19
  gridpath walk city.yaml -interval 200ms`)
}

// session bundles what every command needs after flag parsing.
type session struct {
	cfg   *config.Config
	fs    *flag.FlagSet
	args  []string // positional arguments
	start *string
	end   *string
}

// newSession registers shared flags, parses args, loads config and starts logging.
func newSession(name string, args []string, extra func(fs *flag.FlagSet)) (*session, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	s := &session{
		fs:    fs,
		start: fs.String("start", "", "Start cell as row,col (overrides file)"),
		end:   fs.String("end", "", "End cell as row,col (overrides file)"),
	}
	if extra != nil {
		extra(fs)
	}
	// Flags may follow the file argument, so keep parsing past positionals.
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		s.args = append(s.args, args[0])
		args = args[1:]
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}
	s.cfg = cfg

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}
	logger.Sugar.Debugf("config: %+v", cfg)
	return s, nil
}

// loadMap reads the grid file argument and applies -start/-end overrides.
func (s *session) loadMap() (*gridfile.Map, error) {
	if len(s.args) < 1 {
		return nil, fmt.Errorf("usage: gridpath %s <file>", s.fs.Name())
	}

	m, err := gridfile.ParseFile(s.args[0])
	if err != nil {
		return nil, err
	}
	if *s.start != "" {
		if m.Start, err = parseCoordinate(*s.start); err != nil {
			return nil, fmt.Errorf("-start: %w", err)
		}
	}
	if *s.end != "" {
		if m.End, err = parseCoordinate(*s.end); err != nil {
			return nil, fmt.Errorf("-end: %w", err)
		}
	}
	if m.Start == nil || m.End == nil {
		return nil, errors.New("start and end must be set with S/E markers or -start/-end")
	}

	logger.Debug("grid loaded",
		zap.String("file", s.args[0]),
		zap.Int("rows", m.Grid.Rows()),
		zap.Int("cols", m.Grid.Cols()),
		zap.Int("passable", m.Grid.PassableCount()),
	)
	return m, nil
}

// search runs A* on the map and logs the outcome.
func search(m *gridfile.Map) (pathfinding.Result, error) {
	began := time.Now()
	res, err := pathfinding.Search(m.Grid, *m.Start, *m.End)
	if err != nil {
		logger.Error("search rejected", zap.Error(err))
		return res, err
	}

	logger.Info("search finished",
		zap.Stringer("start", *m.Start),
		zap.Stringer("end", *m.End),
		zap.Bool("found", res.Found),
		zap.Int("steps", res.Path.Steps()),
		zap.Int("expanded", res.Expanded),
		zap.Duration("took", time.Since(began)),
	)
	return res, nil
}

func cmdFind(out io.Writer, args []string) error {
	s, err := newSession("find", args, nil)
	if err != nil {
		return err
	}
	m, err := s.loadMap()
	if err != nil {
		return err
	}

	res, err := search(m)
	if err != nil {
		return err
	}

	opts := render.Options{Start: m.Start, End: m.End, Spaced: s.cfg.Animation.Spaced}
	fmt.Fprint(out, render.Render(m.Grid, res.Path, opts))
	if res.Path.Empty() {
		fmt.Fprintln(out, "No path found!")
		return nil
	}

	cells := make([]string, len(res.Path))
	for i, at := range res.Path {
		cells[i] = at.String()
	}
	fmt.Fprintf(out, "Steps: %d\n", res.Path.Steps())
	fmt.Fprintf(out, "Path:  %s\n", strings.Join(cells, " "))
	return nil
}

func cmdGen(out io.Writer, args []string) error {
	var output *string
	s, err := newSession("gen", args, func(fs *flag.FlagSet) {
		output = fs.String("o", "", "Output file (.txt, .grid or .yaml); stdout if empty")
	})
	if err != nil {
		return err
	}

	opts := s.cfg.GenOptions()
	cells, err := gridgen.Generate(s.cfg.Grid.Size, s.cfg.Grid.Size, opts)
	if err != nil {
		return err
	}
	grid, err := pathfinding.NewGrid(cells)
	if err != nil {
		return err
	}

	m := &gridfile.Map{Grid: grid}
	if start, end, ok := gridgen.RandomEndpoints(cells, gridgen.NewRand(opts.Seed)); ok {
		m.Start = &pathfinding.Coordinate{Row: start[0], Col: start[1]}
		m.End = &pathfinding.Coordinate{Row: end[0], Col: end[1]}
	} else {
		logger.Warn("fewer than two passable cells, endpoints left unset", zap.Uint64("seed", opts.Seed))
	}
	if *s.start != "" {
		if m.Start, err = parseEndpoint(grid, *s.start); err != nil {
			return fmt.Errorf("-start: %w", err)
		}
	}
	if *s.end != "" {
		if m.End, err = parseEndpoint(grid, *s.end); err != nil {
			return fmt.Errorf("-end: %w", err)
		}
	}

	logger.Info("grid generated",
		zap.Int("size", s.cfg.Grid.Size),
		zap.Uint64("seed", opts.Seed),
		zap.Float64("blocked_ratio", opts.BlockedRatio),
		zap.Int("passable", grid.PassableCount()),
	)

	if *output == "" {
		text, err := gridfile.EncodeText(m)
		if err != nil {
			return fmt.Errorf("%w (write a .yaml scenario instead)", err)
		}
		fmt.Fprint(out, text)
		return nil
	}
	if err := gridfile.WriteFile(*output, m); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s (%s, seed %d)\n", *output, gridfile.FormatFor(*output), opts.Seed)
	return nil
}

func cmdWalk(out io.Writer, args []string) error {
	s, err := newSession("walk", args, nil)
	if err != nil {
		return err
	}
	m, err := s.loadMap()
	if err != nil {
		return err
	}

	res, err := search(m)
	if err != nil {
		return err
	}
	if res.Path.Empty() {
		fmt.Fprint(out, render.Render(m.Grid, nil, render.Options{Start: m.Start, End: m.End, Spaced: s.cfg.Animation.Spaced}))
		fmt.Fprintln(out, "No path found!")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w := walker.New(res.Path)
	err = w.Run(ctx, s.cfg.Animation.StepInterval, func(index int, at pathfinding.Coordinate) {
		frame := render.Render(m.Grid, res.Path, render.Options{Marker: &at, Spaced: s.cfg.Animation.Spaced})
		// Clear screen and home cursor
		fmt.Fprint(out, "\033[H\033[2J")
		fmt.Fprint(out, frame)
		fmt.Fprintf(out, "Steps: %d/%d\n", index, w.Steps())
	})
	if errors.Is(err, context.Canceled) {
		logger.Info("walk interrupted", zap.Int("index", w.Index()))
		return nil
	}
	return err
}

func cmdStep(out io.Writer, args []string) error {
	s, err := newSession("step", args, nil)
	if err != nil {
		return err
	}
	m, err := s.loadMap()
	if err != nil {
		return err
	}

	st, err := pathfinding.NewStepper(m.Grid, *m.Start, *m.End)
	if err != nil {
		return err
	}
	last := 0
	for !st.Done() {
		snap := st.Step()
		if snap.StepIndex == last {
			continue
		}
		last = snap.StepIndex
		fmt.Fprintf(out, "%4d  close %-9s open %-4d closed %d\n", snap.StepIndex, snap.Current, snap.Open, snap.Closed)
	}

	res := st.Result()
	if !res.Found {
		fmt.Fprintln(out, "No path found!")
		return nil
	}
	fmt.Fprintf(out, "Steps: %d, expanded: %d\n", res.Path.Steps(), res.Expanded)
	return nil
}

// parseEndpoint parses "row,col" and requires a passable cell of grid.
func parseEndpoint(grid *pathfinding.Grid, s string) (*pathfinding.Coordinate, error) {
	at, err := parseCoordinate(s)
	if err != nil {
		return nil, err
	}
	if !grid.InBounds(*at) {
		return nil, fmt.Errorf("%w: %s", pathfinding.ErrOutOfBounds, at)
	}
	if !grid.Passable(*at) {
		return nil, fmt.Errorf("%w: %s", pathfinding.ErrBlockedEndpoint, at)
	}
	return at, nil
}

// parseCoordinate parses "row,col".
func parseCoordinate(s string) (*pathfinding.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected row,col, got %q", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("row: %w", err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("col: %w", err)
	}
	return &pathfinding.Coordinate{Row: row, Col: col}, nil
}
