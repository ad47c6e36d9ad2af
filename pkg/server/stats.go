package server

import (
	"sync/atomic"

	"wsgate/pkg/http"
)

// trackedStatuses are the response codes counted individually.
var trackedStatuses = []int{
	http.StatusSwitchingProtocols,
	http.StatusOK,
	http.StatusBadRequest,
	http.StatusNotFound,
	http.StatusInternalServerError,
	http.StatusNotImplemented,
	http.StatusHTTPVersionNotSupported,
}

// counters tracks connection totals. The status map is built once and only
// its values change.
type counters struct {
	accepted atomic.Uint64
	active   atomic.Int64
	upgraded atomic.Uint64
	failed   atomic.Uint64
	byStatus map[int]*atomic.Uint64
}

func newCounters() *counters {
	c := &counters{byStatus: make(map[int]*atomic.Uint64, len(trackedStatuses))}
	for _, code := range trackedStatuses {
		c.byStatus[code] = new(atomic.Uint64)
	}
	return c
}

func (c *counters) opened() {
	c.accepted.Add(1)
	c.active.Add(1)
}

func (c *counters) closed() {
	c.active.Add(-1)
}

func (c *counters) record(code int) {
	if n, ok := c.byStatus[code]; ok {
		n.Add(1)
	}
}

// Stats is a point-in-time copy of the server counters.
type Stats struct {
	Accepted  uint64         `json:"accepted"`
	Active    int64          `json:"active"`
	Upgraded  uint64         `json:"upgraded"`
	Failed    uint64         `json:"failed"`
	Responses map[int]uint64 `json:"responses"`
}

func (c *counters) snapshot() Stats {
	s := Stats{
		Accepted:  c.accepted.Load(),
		Active:    c.active.Load(),
		Upgraded:  c.upgraded.Load(),
		Failed:    c.failed.Load(),
		Responses: make(map[int]uint64, len(c.byStatus)),
	}
	for code, n := range c.byStatus {
		if v := n.Load(); v > 0 {
			s.Responses[code] = v
		}
	}
	return s
}
