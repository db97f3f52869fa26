package telemetry

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// TimingCollector records timings as a tree. Nested Start calls become
// children of the innermost running timer, so reports show where the time
// actually went.
type TimingCollector struct {
	mu      sync.Mutex
	root    *timerNode
	current *timerNode
}

type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	parent   *timerNode
	children []*timerNode
}

// NewTimingCollector creates an empty timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: time.Now()}
	if c.root == nil {
		c.root = node
	} else {
		node.parent = c.current
		c.current.children = append(c.current.children, node)
	}
	c.current = node

	return &timingTimer{collector: c, node: node}
}

// Report writes the timing tree, one line per timer, indented by depth.
func (c *TimingCollector) Report(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil {
		return
	}
	writeNode(w, c.root, 0)
}

func writeNode(w io.Writer, node *timerNode, depth int) {
	end := node.end
	if end.IsZero() {
		end = time.Now()
	}
	_, _ = fmt.Fprintf(w, "%s%s  %s\n",
		strings.Repeat("  ", depth), node.name, end.Sub(node.start).Round(time.Microsecond))

	for _, child := range node.children {
		writeNode(w, child, depth+1)
	}
}

type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
}

func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	if t.node.end.IsZero() {
		t.node.end = time.Now()
	}
	if t.collector.current == t.node && t.node.parent != nil {
		t.collector.current = t.node.parent
	}
}

func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	node := &timerNode{name: name, start: time.Now(), parent: t.node}
	t.node.children = append(t.node.children, node)
	t.collector.mu.Unlock()

	return &timingTimer{collector: t.collector, node: node}
}
