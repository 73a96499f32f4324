package decision

import "fmt"

// Code identifies a rejection reason. Codes are stable and safe to branch on.
type Code string

const (
	CodeTileNotFound     Code = "TILE_NOT_FOUND"
	CodeTileLocked       Code = "TILE_LOCKED"
	CodeLastTile         Code = "LAST_TILE"
	CodeMaxTilesExceeded Code = "MAX_TILES_EXCEEDED"
	CodeMinSize          Code = "MIN_SIZE"
	CodeMaxSize          Code = "MAX_SIZE"
	CodeGroupIsolated    Code = "GROUP_ISOLATED"
	CodeNeighborLocked   Code = "NEIGHBOR_LOCKED"
	CodeSeamNotFound     Code = "SEAM_NOT_FOUND"
	CodeSeamNotCovered   Code = "SEAM_NOT_COVERED"
	CodeNoFullSpan       Code = "NO_FULL_SPAN"
	CodeCoverageGap      Code = "COVERAGE_GAP"
	CodeOutOfBounds      Code = "OUT_OF_BOUNDS"
	CodeOverlap          Code = "OVERLAP"
	CodeInvalidParams    Code = "INVALID_PARAMS"
	CodeEdgeLocked       Code = "EDGE_LOCKED"
)

// Violation is a structured rejection.
type Violation struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Path    string         `json:"path,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// Violate builds a violation with a formatted message.
func Violate(code Code, format string, args ...any) Violation {
	return Violation{Code: code, Message: fmt.Sprintf(format, args...)}
}

// At returns a copy with Path set.
func (v Violation) At(path string) Violation {
	v.Path = path
	return v
}

// With returns a copy with key set in Data.
func (v Violation) With(key string, value any) Violation {
	data := make(map[string]any, len(v.Data)+1)
	for k, x := range v.Data {
		data[k] = x
	}
	data[key] = value
	v.Data = data
	return v
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Code, v.Message)
}
