package state

// FetchRequest identifies one issued load. Only the request carrying the
// latest token of its guard may commit a result.
type FetchRequest[K comparable] struct {
	Identifier K
	Token      uint64
}

// FetchGuard hands out monotonically increasing tokens and decides which
// completion is still allowed to mutate state. The counter is global to the
// guard, so issuing for a different identifier supersedes earlier requests
// as well. Superseded loads are not aborted; their results are dropped.
//
// A guard is owned by the coordinator goroutine and is not safe for
// concurrent use.
type FetchGuard[K comparable] struct {
	counter uint64
	latest  FetchRequest[K]
	active  bool
}

// Issue records a new request for identifier and returns it.
func (g *FetchGuard[K]) Issue(identifier K) FetchRequest[K] {
	g.counter++
	g.latest = FetchRequest[K]{Identifier: identifier, Token: g.counter}
	g.active = true
	return g.latest
}

// ShouldCommit reports whether a completion for (identifier, token) is the
// most recently issued request.
func (g *FetchGuard[K]) ShouldCommit(identifier K, token uint64) bool {
	if !g.active || token == 0 {
		return false
	}
	return token == g.latest.Token && identifier == g.latest.Identifier
}

// Accepts is ShouldCommit for a whole request.
func (g *FetchGuard[K]) Accepts(req FetchRequest[K]) bool {
	return g.ShouldCommit(req.Identifier, req.Token)
}

// Invalidate supersedes the outstanding request without issuing a new one.
func (g *FetchGuard[K]) Invalidate() {
	g.counter++
	var zero FetchRequest[K]
	g.latest = zero
	g.active = false
}
