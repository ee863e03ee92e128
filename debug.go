package marionette

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timings. Only logged in debug mode.
type debugStats struct {
	applyTime     time.Duration
	transformTime time.Duration
	physicsTime   time.Duration
	renderTime    time.Duration
	drivers       int
}

// debugLog writes frame timings at debug level.
func (p *Puppet) debugLog(stats debugStats) {
	if !p.debug {
		return
	}
	total := stats.applyTime + stats.transformTime + stats.physicsTime + stats.renderTime
	Logger().Debug("frame",
		"apply", stats.applyTime,
		"transform", stats.transformTime,
		"physics", stats.physicsTime,
		"render", stats.renderTime,
		"total", total,
		"drivers", stats.drivers)
}

// debugMaxTreeDepth is the depth past which Dump flags a tree as suspicious.
const debugMaxTreeDepth = 32

// Dump returns the node tree outline followed by the current draw order.
// Intended for debugging and the inspect command.
func (p *Puppet) Dump() string {
	out := p.nodes.String()
	depth := 0
	for _, id := range p.nodes.PreOrder(p.nodes.Root().ID) {
		depth = max(depth, len(p.nodes.Ancestors(id)))
	}
	if depth > debugMaxTreeDepth {
		out += fmt.Sprintf("warning: tree depth %d exceeds %d\n", depth, debugMaxTreeDepth)
	}
	if p.render == nil {
		return out
	}
	out += "draw order:\n"
	for i, id := range p.render.RootDrawables() {
		nc := p.render.node(id)
		out += fmt.Sprintf("  %d. %s [%d] %s z=%g\n", i+1, p.nodes.Get(id).Name, id, nc.Kind, nc.ZSort)
		if nc.Composite != nil {
			for _, child := range nc.Composite.Children {
				cc := p.render.node(child)
				out += fmt.Sprintf("       %s [%d] z=%g\n", p.nodes.Get(child).Name, child, cc.ZSort)
			}
		}
	}
	return out
}
