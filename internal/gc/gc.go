// Package gc implements the mark-and-sweep cycle spec.md §4.10 describes:
// clear every stub's mark, walk the roots (manuals vector, guard stack,
// the active Level chain, and the permanent symbol-interner table), then
// sweep every managed stub that didn't get marked. A Go port has no
// arena to scan the way a C host would, so internal/stub keeps a
// registry of every stub it has ever handed out (see stub.Registered);
// this package's whole job is driving that registry through one cycle
// and reporting what happened, in the same vein as the teacher's own
// habit of pairing a subsystem with a small Stats struct and a logrus
// summary line rather than silent bookkeeping.
package gc

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/diag"
	"github.com/wyrdlang/wyrd/internal/level"
	"github.com/wyrdlang/wyrd/internal/pool"
	"github.com/wyrdlang/wyrd/internal/series"
	"github.com/wyrdlang/wyrd/internal/stub"
)

// Stats reports what one Collect cycle did.
type Stats struct {
	Tracked        int
	Marked         int
	Freed          int
	BytesReclaimed int
	Duration       time.Duration
}

// Collect runs one full cycle against alloc's manuals/guards and root's
// Level chain, and resets alloc's depletion counter afterward (spec.md
// §4.10: "recycle... resets the depletion counter"). root may be nil
// (no evaluation currently in progress), in which case only the
// manuals, guards, and symbol table are walked.
func Collect(alloc *pool.Allocator, root *level.Level) Stats {
	start := time.Now()
	registry := stub.Registered()

	for _, s := range registry {
		s.ClearMark()
	}

	for _, m := range alloc.ManualsLive() {
		if n, ok := m.(cellcore.Node); ok {
			n.GCMark()
		}
	}
	for _, g := range alloc.GuardsLive() {
		if n, ok := g.(cellcore.Node); ok {
			n.GCMark()
		}
	}
	if root != nil {
		for _, l := range root.Chain() {
			l.GCMark()
		}
	}
	for _, sym := range series.AllSymbols() {
		sym.GCMark()
	}

	marked := 0
	for _, s := range registry {
		if s.IsMarked() {
			marked++
		}
	}

	freed, bytesReclaimed := stub.Sweep(func(s *stub.Stub) bool { return s.IsMarked() })
	alloc.ResetDepletion()

	stats := Stats{
		Tracked:        len(registry),
		Marked:         marked,
		Freed:          freed,
		BytesReclaimed: bytesReclaimed,
		Duration:       time.Since(start),
	}

	diag.Logger().WithFields(logrus.Fields{
		"tracked":  stats.Tracked,
		"marked":   stats.Marked,
		"freed":    stats.Freed,
		"bytes":    stats.BytesReclaimed,
		"duration": stats.Duration,
	}).Debug("gc cycle")

	return stats
}
