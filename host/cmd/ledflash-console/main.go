// Command ledflash-console tails the flasher's USB debug console.
package main

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"

	"ledflasher/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	events  = flag.Bool("events", false, "Only show event ring dumps and errors")
	rawMode = flag.Bool("raw", false, "Print lines as received")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(os.Stderr, "Tailing %s (Ctrl-C to exit)\n", port.Name())
	err = port.Tail(ctx, printRecord)
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", port.Name(), err)
		os.Exit(1)
	}
}

func printRecord(rec serial.Record) {
	if *rawMode || rec.Msg == "" {
		if !*events {
			fmt.Println(rec.Raw)
		}
		return
	}

	switch {
	case rec.IsEvent():
		fmt.Println(rec.Msg)
	case rec.Level == "ERROR" || rec.Level == "WARN":
		fmt.Printf("%s %s %s\n", rec.Level, rec.Msg, attrs(rec))
	case *events:
		return
	case rec.Msg == "status":
		duty, _ := rec.Int("duty")
		est, _ := rec.Int("estimate")
		fmt.Printf("%-5s led=%-5s duty=%2d/%d est=%3d presses=%s bounces=%s edges=%s\n",
			rec.Attrs["mode"], rec.Attrs["led"], duty, 65, est,
			rec.Attrs["presses"], rec.Attrs["bounces"], rec.Attrs["edges"])
	default:
		fmt.Printf("%s %s\n", rec.Msg, attrs(rec))
	}
}

func attrs(rec serial.Record) string {
	s := ""
	for _, k := range slices.Sorted(maps.Keys(rec.Attrs)) {
		if s != "" {
			s += " "
		}
		s += k + "=" + rec.Attrs[k]
	}
	return s
}
