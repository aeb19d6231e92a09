package search

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors returned by the search package.
var (
	// ErrNilGraph indicates a nil *ladder.Graph.
	ErrNilGraph = errors.New("search: graph is nil")

	// ErrUnknownStrategy indicates a strategy tag outside BFS/UCS/GBFS/AStar.
	ErrUnknownStrategy = errors.New("search: unknown strategy")

	// ErrUnknownWord indicates that the start or target word is not in the graph.
	ErrUnknownWord = errors.New("search: word not in graph")

	// ErrNoHint indicates that no next move exists (already at target or unreachable).
	ErrNoHint = errors.New("search: no hint available")
)

// Strategy selects the frontier discipline of a search.
type Strategy string

const (
	BFS   Strategy = "bfs"
	UCS   Strategy = "ucs"
	GBFS  Strategy = "gbfs"
	AStar Strategy = "astar"
)

// All returns every strategy in display order.
func All() []Strategy { return []Strategy{BFS, UCS, GBFS, AStar} }

// Valid reports whether s is one of the four strategies.
func (s Strategy) Valid() bool {
	switch s {
	case BFS, UCS, GBFS, AStar:
		return true
	}
	return false
}

// informed reports whether the strategy uses the Hamming estimate.
func (s Strategy) informed() bool { return s == GBFS || s == AStar }

// Label is the human-readable name of s.
func (s Strategy) Label() string {
	switch s {
	case BFS:
		return "BFS"
	case UCS:
		return "UCS"
	case GBFS:
		return "GBFS"
	case AStar:
		return "A*"
	}
	return string(s)
}

// ParseStrategy maps a user-supplied name to a Strategy.
// Accepts bfs, ucs, gbfs, astar, a-star and a* in any case.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs":
		return BFS, nil
	case "ucs":
		return UCS, nil
	case "gbfs":
		return GBFS, nil
	case "astar", "a-star", "a*":
		return AStar, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Estimate is a cost that may be absent ("N/A").
// The zero value is N/A.
type Estimate struct {
	v  int
	ok bool
}

// NA is the "not applicable" estimate.
var NA = Estimate{}

// Value wraps a known cost.
func Value(v int) Estimate { return Estimate{v: v, ok: true} }

// Int returns the cost and whether it is known.
func (e Estimate) Int() (int, bool) { return e.v, e.ok }

// IsNA reports whether e carries no value.
func (e Estimate) IsNA() bool { return !e.ok }

func (e Estimate) String() string {
	if !e.ok {
		return "N/A"
	}
	return strconv.Itoa(e.v)
}

// MarshalJSON encodes a known value as a number and N/A as the string "N/A".
func (e Estimate) MarshalJSON() ([]byte, error) {
	if !e.ok {
		return []byte(`"N/A"`), nil
	}
	return []byte(strconv.Itoa(e.v)), nil
}

// UnmarshalJSON accepts a number or the string "N/A".
func (e *Estimate) UnmarshalJSON(b []byte) error {
	if string(b) == `"N/A"` || string(b) == "null" {
		*e = NA
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("search: estimate must be an integer or \"N/A\": %w", err)
	}
	*e = Value(v)
	return nil
}

// Cost is the g/h/f triple recorded for a word.
type Cost struct {
	G int      `json:"g"`
	H Estimate `json:"h"`
	F Estimate `json:"f"`
}

// Stats describes one search invocation.
type Stats struct {
	Strategy      Strategy        // strategy that produced these numbers
	NodesExplored int             // frontier pops, stale entries included
	MaxQueueSize  int             // high-water mark of the frontier
	ExecutionTime time.Duration   // wall clock of the search loop
	Costs         map[string]Cost // costs at first admission to the frontier
}

func newStats(s Strategy) *Stats {
	return &Stats{Strategy: s, MaxQueueSize: 1, Costs: make(map[string]Cost)}
}

// Seconds returns ExecutionTime in seconds.
func (s *Stats) Seconds() float64 { return s.ExecutionTime.Seconds() }

// statsJSON is the wire shape of Stats.
type statsJSON struct {
	Strategy      Strategy        `json:"strategy"`
	NodesExplored int             `json:"nodes_explored"`
	MaxQueueSize  int             `json:"max_queue_size"`
	ExecutionTime float64         `json:"execution_time"`
	Costs         map[string]Cost `json:"costs"`
}

// MarshalJSON renders execution_time as float seconds.
func (s *Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(statsJSON{
		Strategy:      s.Strategy,
		NodesExplored: s.NodesExplored,
		MaxQueueSize:  s.MaxQueueSize,
		ExecutionTime: s.Seconds(),
		Costs:         s.Costs,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (s *Stats) UnmarshalJSON(b []byte) error {
	var raw statsJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = Stats{
		Strategy:      raw.Strategy,
		NodesExplored: raw.NodesExplored,
		MaxQueueSize:  raw.MaxQueueSize,
		ExecutionTime: time.Duration(raw.ExecutionTime * float64(time.Second)),
		Costs:         raw.Costs,
	}
	return nil
}
