package runtime

import (
	"context"

	"github.com/aretw0/wizard/pkg/domain"
)

// backtrack rewinds the run after curr answered Back. It re-queues curr, then
// pops history until it finds the nearest real stop, which is left on top of
// the work stack. It returns false when history is exhausted.
//
// Answers already stored are kept; re-asked questions overwrite them.
func (r *run) backtrack(ctx context.Context, curr *domain.Node) bool {
	r.dropQueuedDescendants(curr)
	r.push(curr)

	for len(r.history) > 0 {
		last := r.history[len(r.history)-1]
		r.history = r.history[:len(r.history)-1]

		// Children expanded from last are re-expanded once it is answered again.
		r.dropQueuedDescendants(last)
		r.push(last)

		if r.isRealStop(last) {
			r.logger.Debug("backtracked", "from", curr.Label(), "to", last.Label())
			r.e.emitBacktrack(ctx, r, curr, last)
			return true
		}
	}

	r.logger.Debug("back underflow", "from", curr.Label())
	r.e.emitBacktrack(ctx, r, curr, nil)
	return false
}

// isRealStop reports whether n was shown to the user.
func (r *run) isRealStop(n *domain.Node) bool {
	if n.Kind != domain.KindLeaf || n.IsFunction() {
		return false
	}
	return !r.skipped[n]
}

// dropQueuedDescendants removes every queued node below anc.
func (r *run) dropQueuedDescendants(anc *domain.Node) {
	kept := r.stack[:0]
	for _, n := range r.stack {
		if !r.isDescendant(n, anc) {
			kept = append(kept, n)
		}
	}
	clear(r.stack[len(kept):])
	r.stack = kept
}

func (r *run) isDescendant(n, anc *domain.Node) bool {
	for p := r.parent[n]; p != nil; p = r.parent[p] {
		if p == anc {
			return true
		}
	}
	return false
}
