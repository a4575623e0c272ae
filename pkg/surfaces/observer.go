package surfaces

import (
	"sync"
	"time"

	"github.com/iconica/core/pkg/dom"
)

// MarkerAttr tags every node this plugin injects, so reconciliation can
// cheaply distinguish its own mutations from the host's.
const MarkerAttr = "data-iconica"

// Observer coalesces bursts of host-driven structural churn into a single
// re-apply. The host adapter reports added nodes; nodes carrying the
// injection marker are ignored to avoid feedback loops.
type Observer struct {
	mu      sync.Mutex
	window  time.Duration
	timer   *time.Timer
	apply   func()
	stopped bool
}

// NewObserver creates an observer invoking apply after the debounce
// window elapses without further changes being scheduled.
func NewObserver(window time.Duration, apply func()) *Observer {
	if window <= 0 {
		window = 50 * time.Millisecond
	}
	return &Observer{window: window, apply: apply}
}

// NodesAdded reports host-created nodes. Self-injected nodes (those with
// the marker attribute, or inside a marked subtree) do not schedule.
func (o *Observer) NodesAdded(nodes ...*dom.Node) {
	for _, n := range nodes {
		if !selfInjected(n) {
			o.Schedule()
			return
		}
	}
}

// Schedule arms (or re-arms) the debounced re-apply.
func (o *Observer) Schedule() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return
	}
	if o.timer != nil {
		o.timer.Stop()
	}
	o.timer = time.AfterFunc(o.window, o.fire)
}

// fire runs the apply callback under the observer lock, so Stop acts as
// a barrier: once Stop returns, no apply is running or pending. The
// callback must not call Schedule or Stop synchronously.
func (o *Observer) fire() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return
	}
	o.timer = nil
	o.apply()
}

// Stop cancels any pending apply and waits out one in flight. Safe to
// call repeatedly.
func (o *Observer) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopped = true
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

// Resume re-enables a stopped observer.
func (o *Observer) Resume() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopped = false
}

// selfInjected reports whether a node was created by this plugin, either
// directly marked or nested under a marked ancestor.
func selfInjected(n *dom.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Attr(MarkerAttr) != "" {
			return true
		}
	}
	return false
}
