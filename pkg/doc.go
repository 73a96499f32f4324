// Package pkg provides the core libraries of tilegrid, an editor for
// rectangular tilings of a 100x100 container.
//
// # Overview
//
// A layout is a set of non-overlapping axis-aligned tiles that exactly cover
// the container. Every edit is checked by a decision graph before it is
// applied, and either returns a new immutable tiling or a list of
// violations. The pkg directory is organized into four areas:
//
//  1. Geometry - [geom] rectangles and tolerances, [tiling] immutable states,
//     seams and neighbors
//  2. Rules - [decision] graphs, [config] limits and strategy keys,
//     [strategy] algorithm registries
//  3. Operations - [seam] clamping, [ops] split/delete/insert/resize,
//     [adjust] repair, [engine] history and concurrency
//  4. Infrastructure - [snapshot] encoding, [store] backends, [render]
//     images, [observability] hooks, [errors] codes
//
// # Architecture
//
// The typical flow of one edit:
//
//	caller (CLI, HTTP, editor)
//	         ↓
//	    [engine] (lock, history)
//	         ↓
//	    [ops] (decision graph, then strategy)
//	         ↓
//	    [tiling] (new validated state)
//	         ↓
//	    [snapshot] → [store]
//
// # Quick Start
//
//	e, _ := engine.New(nil, engine.Options{Config: config.Default()})
//	res, _ := e.Split(ctx, engine.RootTileID, "vertical", 0.3)
//	if !res.Valid {
//	    for _, v := range res.Violations {
//	        fmt.Println(v.Code, v.Message)
//	    }
//	}
//	e.Undo()
//
// [geom]: github.com/matzehuels/tilegrid/pkg/geom
// [tiling]: github.com/matzehuels/tilegrid/pkg/tiling
// [decision]: github.com/matzehuels/tilegrid/pkg/decision
// [config]: github.com/matzehuels/tilegrid/pkg/config
// [strategy]: github.com/matzehuels/tilegrid/pkg/strategy
// [seam]: github.com/matzehuels/tilegrid/pkg/seam
// [ops]: github.com/matzehuels/tilegrid/pkg/ops
// [adjust]: github.com/matzehuels/tilegrid/pkg/adjust
// [engine]: github.com/matzehuels/tilegrid/pkg/engine
// [snapshot]: github.com/matzehuels/tilegrid/pkg/snapshot
// [store]: github.com/matzehuels/tilegrid/pkg/store
// [render]: github.com/matzehuels/tilegrid/pkg/render
// [observability]: github.com/matzehuels/tilegrid/pkg/observability
// [errors]: github.com/matzehuels/tilegrid/pkg/errors
package pkg
