// Command ledflash-sim runs the flasher's control core against the
// simulated board and drives its button from stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"ledflasher/config"
	"ledflasher/core"
	"ledflasher/sim"
)

var (
	configPath = flag.String("config", "", "JSON file with tunable overrides")
	noise      = flag.Int("noise", 0, "Peak sense noise in counts")
	gain       = flag.Float64("gain", 0.5, "Sense counts per duty step")
	seed       = flag.Int64("seed", 1, "Noise seed")
	script     = flag.String("script", "", "Comma separated commands to run instead of stdin")
	verbose    = flag.Bool("verbose", false, "Log mode changes and debug output to stderr")
)

type session struct {
	board *sim.Board
	ctrl  *core.Controller
}

func main() {
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	core.SetDebugWriter(func(msg string) {
		logger.Debug(msg)
	})
	core.SetDebugEnabled(*verbose)
	core.InitAsyncDebug()

	cfg := core.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = *loaded
	}

	simCfg := sim.DefaultConfig()
	simCfg.Noise = *noise
	simCfg.SenseGain = *gain
	simCfg.Seed = *seed

	board := sim.NewBoard(simCfg)
	ctrl, err := core.NewController(cfg, board.Peripherals())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	s := &session{board: board, ctrl: ctrl}

	if *script != "" {
		for _, line := range strings.Split(*script, ",") {
			if !s.exec(line) {
				break
			}
		}
		s.report()
		return
	}

	fmt.Println("ledflasher simulator (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() || !s.exec(scanner.Text()) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

// exec runs one command line and reports whether to continue
func (s *session) exec(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return true
	}

	switch parts[0] {
	case "quit", "exit", "q":
		return false

	case "help", "?":
		printHelp()

	case "press", "p":
		// Press, hold, then let the core settle
		hold := argMS(parts, 100)
		s.board.Tap(s.board.Now()+core.TicksFromMS(1), hold)
		s.board.RunFor(s.ctrl, hold+core.TicksFromMS(100))
		s.report()

	case "bounce", "b":
		hold := argMS(parts, 100)
		s.board.Chatter(s.board.Now()+core.TicksFromMS(1), hold, 5)
		s.board.RunFor(s.ctrl, hold+core.TicksFromMS(100))
		s.report()

	case "glitch", "g":
		s.board.After(core.TicksFromMS(1), s.board.Button.Glitch)
		s.board.RunFor(s.ctrl, core.TicksFromMS(100))
		s.report()

	case "run", "r":
		s.board.RunFor(s.ctrl, argMS(parts, 1000))
		s.report()

	case "status", "s":
		s.report()

	case "events", "e":
		for _, evt := range core.Events() {
			fmt.Printf("  %10d %-3d v1=%d v2=%d\n", evt.Clock, evt.Type, evt.Value1, evt.Value2)
		}

	default:
		fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", parts[0])
	}
	return true
}

func (s *session) report() {
	fmt.Printf("t=%-8s %s resets=%d maxgap=%dms\n",
		fmtMS(s.board.Now()), s.ctrl.Status(),
		s.board.Power.Resets, core.TicksToMS(s.board.Power.MaxGap))
}

// argMS parses the optional millisecond argument of a command
func argMS(parts []string, def uint32) core.Ticks {
	if len(parts) < 2 {
		return core.TicksFromMS(def)
	}
	n, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		fmt.Printf("bad duration %q, using %dms\n", parts[1], def)
		return core.TicksFromMS(def)
	}
	return core.TicksFromMS(uint32(n))
}

func fmtMS(t core.Ticks) string {
	return strconv.FormatUint(uint64(core.TicksToMS(t)), 10) + "ms"
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  press [ms]   - Clean press held for ms (default 100)")
	fmt.Println("  bounce [ms]  - Press with contact chatter")
	fmt.Println("  glitch       - Single stray edge, no press")
	fmt.Println("  run [ms]     - Let the loop run (default 1000)")
	fmt.Println("  status       - Print the control state")
	fmt.Println("  events       - Print the event ring")
	fmt.Println("  quit/exit/q  - Exit the program")
	fmt.Println()
}
