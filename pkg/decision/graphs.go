package decision

// Operation names bound by [Builtin].
const (
	OpSplit      = "split"
	OpDelete     = "delete"
	OpInsert     = "insert"
	OpResize     = "resize"
	OpSeamResize = "seam-resize"
	OpValidate   = "validate"
)

// Graphs returns the built-in precondition graph of every operation.
func Graphs() map[string]Node {
	return map[string]Node{
		OpSplit: Sequence(OpSplit,
			TileExists(),
			TileUnlocked(),
			OrientationValid(),
			RatioInRange(),
			MaxTiles(1),
			SplitFits(),
		),
		OpDelete: Sequence(OpDelete,
			TileExists(),
			TileUnlocked(),
			NotLastTile(),
			PlanDelete(),
			HasFullSpan(),
			GroupPolicy(),
			AbsorberAvailable(),
		),
		OpInsert: Sequence(OpInsert,
			TileExists(),
			TileUnlocked(),
			EdgeValid(),
			SizeInRange(),
			MaxTiles(1),
			InsertFits(),
		),
		OpResize: Sequence(OpResize,
			TileExists(),
			TileUnlocked(),
			EdgeValid(),
			DeltaFinite(),
			ResolveEdgeSeam(),
			SeamExists(),
			SeamCovered(),
			ChainEdgesUnlocked(),
			NeighborsUnlocked(),
		),
		OpSeamResize: Sequence(OpSeamResize,
			DeltaFinite(),
			SeamExists(),
			SeamCovered(),
			ChainEdgesUnlocked(),
			ChainUnlocked(),
		),
		OpValidate: Sequence(OpValidate,
			BoundsValid(),
			NoOverlap(),
			CoverageComplete(),
			TilesMinSize(),
			TilesMaxSize(),
			TileCount(),
		),
	}
}

// Builtin returns a registry holding [Graphs].
func Builtin() *Registry {
	r := NewRegistry()
	for op, root := range Graphs() {
		if err := r.Register(op, root); err != nil {
			panic(err)
		}
	}
	return r
}
