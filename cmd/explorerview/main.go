// Command explorerview is a read-only replay viewer: it loads a
// recorded transport file and drives the adapted Gio viewer
// (internal/vis) for human inspection. It never writes to either
// transport file (spec.md §6 "replay mode").
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/swarm-explore/internal/vis"
	"github.com/elektrokombinacija/swarm-explore/internal/vis/state"
)

func main() {
	replayPath := flag.String("replay", "", "recorded transport file to replay (required)")
	id := flag.Uint("id", 0, "peer id the recording belongs to, for self-highlighting")
	flag.Parse()

	if *replayPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -replay is required")
		flag.Usage()
		os.Exit(1)
	}

	frames, err := state.LoadReplay(*replayPath)
	if err != nil {
		log.Fatalf("[ERROR] loading replay %s: %v", *replayPath, err)
	}
	log.Printf("[INFO] loaded %d recorded frames from %s", len(frames), *replayPath)

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Explorer Replay"),
			app.Size(unit.Dp(1400), unit.Dp(900)),
		)

		application := vis.NewApp(uint32(*id), frames)
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
