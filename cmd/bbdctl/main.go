// bbdctl is a small flag-driven CLI over the breadboard package,
// shaped after cmd/ie32to64's single-purpose-subcommand style:
// parse flags, do one job, report errors to stderr with a non-zero
// exit code.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/dragazo/breadboard"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runCmd(os.Args[2:])
	case "inspect":
		err = inspectCmd(os.Args[2:])
	case "watch":
		err = watchCmd(os.Args[2:])
	case "-h", "-help", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "bbdctl: unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "bbdctl: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: bbdctl <command> [options]

Commands:
  run      load a .bbd board and tick it to completion or a fixed count
  inspect  load a .bbd board and report its component/cable/wiring summary
  watch    like run, but prints a snapshot of every microcontroller after each tick

Run "bbdctl <command> -h" for command-specific options.
`)
}

func loadBoard(path string) (*breadboard.Board, bool, error) {
	board, perfect, err := breadboard.Load(path)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", path, err)
	}
	if err := board.Initialise(); err != nil {
		return nil, false, fmt.Errorf("initialise %s: %w", path, err)
	}
	return board, perfect, nil
}

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	board := fs.String("board", "", "path to a .bbd board file (required)")
	ticks := fs.Int("ticks", 1000, "maximum number of ticks to run")
	dt := fs.Float64("dt", 1.0, "tick duration passed to Tick(dt)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *board == "" {
		fs.Usage()
		return fmt.Errorf("-board is required")
	}

	b, perfect, err := loadBoard(*board)
	if err != nil {
		return err
	}
	if !perfect {
		fmt.Fprintln(os.Stderr, "bbdctl: board loaded non-perfect (some records were dropped)")
	}

	ran := 0
	for ; ran < *ticks; ran++ {
		if allStopped(b) {
			break
		}
		if err := b.Tick(*dt); err != nil {
			return fmt.Errorf("tick %d: %w", ran, err)
		}
	}
	fmt.Printf("ticks run: %d\ntotal ops: %d\n", ran, b.TotalOps())
	return nil
}

func inspectCmd(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	board := fs.String("board", "", "path to a .bbd board file (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *board == "" {
		fs.Usage()
		return fmt.Errorf("-board is required")
	}

	b, perfect, err := loadBoard(*board)
	if err != nil {
		return err
	}

	fmt.Printf("board: %dx%d\n", b.W, b.H)
	fmt.Printf("perfect load: %v\n", perfect)
	fmt.Printf("components: %d\n", len(b.Components()))
	fmt.Printf("solder cables: %d\n", len(b.Cables(breadboard.Solder)))
	fmt.Printf("bridge cables: %d\n", len(b.Cables(breadboard.Bridge)))
	fmt.Printf("microcontrollers: %d\n", len(b.Microcontrollers()))
	for i, c := range b.Components() {
		fmt.Printf("  [%d] %s at (%d,%d) size %dx%d\n", i, c.Kind, c.Pos.X, c.Pos.Y, c.W, c.H)
	}
	return nil
}

func watchCmd(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	board := fs.String("board", "", "path to a .bbd board file (required)")
	ticks := fs.Int("ticks", 1000, "maximum number of ticks to run")
	dt := fs.Float64("dt", 1.0, "tick duration passed to Tick(dt)")
	interval := fs.Duration("interval", 200*time.Millisecond, "pause between printed frames")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *board == "" {
		fs.Usage()
		return fmt.Errorf("-board is required")
	}

	b, _, err := loadBoard(*board)
	if err != nil {
		return err
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	for i := 0; i < *ticks; i++ {
		if allStopped(b) {
			break
		}
		if err := b.Tick(*dt); err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		printFrame(b, i, width)
		time.Sleep(*interval)
	}
	return nil
}

// allStopped reports whether every microcontroller on the board has
// stopped running - watch/run both exit early once nothing can
// advance.
func allStopped(b *breadboard.Board) bool {
	mcus := b.Microcontrollers()
	if len(mcus) == 0 {
		return false
	}
	for _, m := range mcus {
		if m.Running {
			return false
		}
	}
	return true
}

func printFrame(b *breadboard.Board, tick int, width int) {
	line := fmt.Sprintf("tick %d | ops %d", tick, b.TotalOps())
	for i, m := range b.Microcontrollers() {
		line += fmt.Sprintf(" | mcu%d@%d", i, m.Line)
		if m.Errored {
			line += "!err"
		}
	}
	if len(line) > width {
		line = line[:width]
	}
	fmt.Println(strings.TrimRight(line, " "))
}
