// Package pkg provides the core libraries for depweb dependency exploration.
//
// # Overview
//
// Depweb turns a dependency structure matrix and a clustering of its
// variables into an interactive force-directed graph. The pkg directory is
// organized leaf-first:
//
//  1. [model] - Graph data model and the builder from matrix + clustering
//  2. [force] - Force simulation: center, gravity, link, charge, collide
//  3. [scheduler] - Wall-clock time to deterministic tick batches
//  4. [input] - Pointer, view transform, zoom and selection state machine
//  5. [render] - Frame painting onto a Surface, raster and DOT/SVG export
//  6. [session] - One explorable graph wiring all of the above for a host
//
// Supporting packages: [config] (tunables, TOML), [io] (JSON input and
// layout export), [errors] (structured error codes), [observability]
// (hooks), [fonts] (label face), [buildinfo] (version).
//
// # Architecture
//
// The data flow of one session:
//
//	matrix.json + clustering.json
//	         ↓
//	    [io] package (decode) → [model] package (build, validate)
//	         ↓
//	    [force] package (genesis ticks)
//	         ↓
//	    host callback → [scheduler] → step × n, [input] resolve, [render] draw
//
// # Quick Start
//
// Load a graph, let it settle and write a PNG:
//
//	g, err := io.Load("deps.json", "clusters.json")
//	if err != nil {
//	    return err
//	}
//	s, err := session.New(g, config.Default(), session.WithSize(800, 600, 1))
//	if err != nil {
//	    return err
//	}
//	for i := 1; i <= 300; i++ {
//	    s.Frame(time.Duration(i) * time.Second / 60)
//	}
//	frame := s.RenderFrame()
//	raster := render.NewRaster(render.DeviceSize(frame))
//	s.Renderer().Draw(raster, frame)
//	err = raster.EncodePNG(w)
//
// # Hosts
//
// The hosts live in internal/: a bubbletea terminal explorer and an ebiten
// desktop window, both driving a [session.Session] from their single update
// goroutine.
package pkg
