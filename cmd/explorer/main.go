// Command explorer runs one exploring robot: it reads a PolyMap, seeds
// a kinematic robot and exploration brain, attaches the gossip
// transport pair, and drives the run loop until its inputs close.
//
// Grounded on ek-roj/roj-node-go/main.go's flag-parse-then-validate,
// then-construct-components-then-run shape (spec.md §6 flags).
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/elektrokombinacija/swarm-explore/internal/brain"
	"github.com/elektrokombinacija/swarm-explore/internal/geom"
	"github.com/elektrokombinacija/swarm-explore/internal/reduce"
	"github.com/elektrokombinacija/swarm-explore/internal/render"
	"github.com/elektrokombinacija/swarm-explore/internal/runloop"
	"github.com/elektrokombinacija/swarm-explore/internal/simrobot"
	"github.com/elektrokombinacija/swarm-explore/internal/transport"
)

func main() {
	inPath := flag.String("in", "", "inbound transport file (required)")
	outPath := flag.String("out", "", "outbound transport file (required)")
	mapPath := flag.String("map", "", "PolyMap file path (required)")
	id := flag.Uint("id", 0, "peer id (default: random)")
	logPath := flag.String("log", "", "log file path (default: stderr)")
	pngDir := flag.String("png", "", "debug PNG output directory (default: disabled)")
	pngEvery := flag.Int("png-every", 0, "write a debug PNG every N Reached events (default: never)")
	flag.Parse()

	if *inPath == "" || *outPath == "" || *mapPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -in, -out and -map are all required")
		flag.Usage()
		os.Exit(1)
	}

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("[ERROR] opening log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	selfID := uint32(*id)
	if selfID == 0 {
		selfID = rand.Uint32()
	}
	log.Printf("[INFO] explorer starting as peer %d", selfID)

	world, err := geom.LoadPolyMapFile(*mapPath)
	if err != nil {
		log.Fatalf("[ERROR] loading map %s: %v", *mapPath, err)
	}

	start := simrobot.Position{Point: geom.Point{X: 0, Y: 0}, Heading: 0}
	robot := simrobot.NewRobot(start, world)
	b := brain.NewBrain(selfID, start)

	reader, err := transport.NewPeerReader(*inPath)
	if err != nil {
		log.Fatalf("[ERROR] opening inbound transport %s: %v", *inPath, err)
	}
	defer reader.Close()

	writer, err := transport.NewWriter(*outPath)
	if err != nil {
		log.Fatalf("[ERROR] opening outbound transport %s: %v", *outPath, err)
	}
	defer writer.Close()

	var onPNG runloop.PNGHook
	if *pngDir != "" && *pngEvery > 0 {
		if err := os.MkdirAll(*pngDir, 0o755); err != nil {
			log.Fatalf("[ERROR] creating png directory %s: %v", *pngDir, err)
		}
		onPNG = func(debugCounter int) {
			if debugCounter%*pngEvery != 0 {
				return
			}
			scene := render.Scene{
				Grid:   b.Grid().Clone(),
				SelfID: selfID,
				Peers:  make(map[uint32]geom.Point),
			}
			for peerID, pos := range b.Peers() {
				scene.Peers[peerID] = pos.Point
			}
			go writeDebugPNG(*pngDir, debugCounter, scene)
		}
	}

	loop := runloop.New(selfID, b, robot, reader, writer, onPNG)

	selfEvents := make(chan reduce.Event)
	defer close(selfEvents)

	if err := loop.Run(selfEvents); err != nil {
		log.Fatalf("[ERROR] run loop exited: %v", err)
	}
	log.Printf("[INFO] explorer %d exiting cleanly", selfID)
}

// writeDebugPNG renders one snapshot in its own short-lived goroutine
// so the main loop is never blocked on disk I/O (spec.md §5). The
// scene is captured on the run-loop goroutine before this is started,
// so the brain itself is never read from here.
func writeDebugPNG(dir string, counter int, scene render.Scene) {
	path := fmt.Sprintf("%s/frame-%06d.png", dir, counter)
	if err := render.DrawPNG(scene, path); err != nil {
		log.Printf("[WARN] writing debug png %s: %v", path, err)
	}
}
