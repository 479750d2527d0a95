// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package describe

import (
	"io"
	"strconv"

	"github.com/cockroachdb/describe/internal/invariants"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/swiss"
)

// Stats describes the work done by a single top-level call.
type Stats struct {
	// Values is the number of values dispatched to a strategy.
	Values int
	// Cycles is the number of values replaced by RecursionPlaceholder because
	// they are one of their own ancestors.
	Cycles int
	// DepthLimited is the number of values replaced by RecursionPlaceholder
	// because of the depth limit.
	DepthLimited int
	// Truncated is the number of containers whose elements were cut short by
	// the count limit.
	Truncated int
	// MaxDepth is the deepest nesting level of a described value. The root is
	// at level zero.
	MaxDepth int
}

// SafeFormat implements redact.SafeFormatter.
func (s Stats) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("values=%d cycles=%d depth-limited=%d truncated=%d max-depth=%d",
		s.Values, s.Cycles, s.DepthLimited, s.Truncated, s.MaxDepth)
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	return redact.StringWithoutMarkers(s)
}

type opKind uint8

const (
	opText opKind = iota
	opChild
)

// op is a single step recorded while a strategy renders a value: either
// literal text or a child to describe.
type op struct {
	kind   opKind
	text   string
	parent any
	child  any
}

// recorder is the Writer handed to strategies. Rendering only records what the
// strategy wrote and which children it asked for; the controller replays the
// recording afterwards. This keeps the traversal on the controller's own stack
// instead of the goroutine stack.
type recorder struct {
	ops       []op
	children  int
	truncated int
}

var _ Writer = (*recorder)(nil)
var _ truncationRecorder = (*recorder)(nil)

func (r *recorder) WriteString(s string) {
	if s == "" {
		return
	}
	r.ops = append(r.ops, op{kind: opText, text: s})
}

func (r *recorder) recurse(parent, child any) {
	r.ops = append(r.ops, op{kind: opChild, parent: parent, child: child})
	r.children++
}

func (r *recorder) recordTruncation() {
	r.truncated++
}

// frame is a value whose children are being described.
type frame struct {
	ops []op
	pos int
	// entered is set if the frame was pushed by enter, in which case parent
	// must be released when the frame is popped.
	entered bool
	parent  identity
	hasID   bool
}

// controller owns the depth and cycle state of one top-level call. It is never
// shared between calls.
type controller struct {
	out      io.Writer
	registry *Registry
	logger   Logger
	maxDepth int
	maxCount int
	// deepThreshold is the frame stack size above which a warning is logged.
	deepThreshold int
	warned        bool

	depth int
	// onStack counts the ancestors of the value being described by identity.
	// A count is needed because the same parent can be entered more than
	// once on the current path when it is passed explicitly by a strategy.
	onStack swiss.Map[identity, int]
	stack   []frame
	stats   Stats
}

func (c *controller) init(out io.Writer, o *Options, maxDepth, maxCount int) {
	c.out = out
	c.registry = o.Registry
	c.logger = o.Logger
	c.maxDepth = maxDepth
	c.maxCount = maxCount
	c.deepThreshold = o.DeepTraversalThreshold
	c.onStack.Init(16)
}

func (c *controller) bounded() bool {
	return c.maxDepth >= 0
}

// run describes v, writing the description to the controller's sink.
func (c *controller) run(v any) (err error) {
	defer c.unwind()

	r, limited, err := c.renderBounded(v)
	if err != nil {
		return err
	}
	if limited {
		c.stats.DepthLimited++
		return c.write(RecursionPlaceholder)
	}
	c.commit(r)
	c.stack = append(c.stack, frame{ops: r.ops})

	for len(c.stack) > 0 {
		f := &c.stack[len(c.stack)-1]
		if f.pos == len(f.ops) {
			c.pop()
			continue
		}
		o := &f.ops[f.pos]
		f.pos++
		switch o.kind {
		case opText:
			err = c.write(o.text)
		case opChild:
			err = c.enter(o.parent, o.child)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// enter describes the child other of the value me.
func (c *controller) enter(me, other any) error {
	if c.atDepthLimit() {
		c.stats.DepthLimited++
		return c.write(RecursionPlaceholder)
	}
	id, hasID := c.push(me)
	if level := len(c.stack); level > c.stats.MaxDepth {
		c.stats.MaxDepth = level
	}

	if otherID, ok := identityOf(other); ok {
		if _, ok := c.onStack.Get(otherID); ok {
			c.stats.Cycles++
			c.release(id, hasID)
			return c.write(RecursionPlaceholder)
		}
	}

	r, limited, err := c.renderBounded(other)
	if err != nil {
		c.release(id, hasID)
		return err
	}
	if limited {
		// Describing other would descend past the depth limit.
		c.stats.DepthLimited++
		c.release(id, hasID)
		return c.write(RecursionPlaceholder)
	}
	if r.children == 0 {
		c.commit(r)
		for i := range r.ops {
			if err := c.write(r.ops[i].text); err != nil {
				c.release(id, hasID)
				return err
			}
		}
		c.release(id, hasID)
		return nil
	}
	c.commit(r)
	c.stack = append(c.stack, frame{ops: r.ops, entered: true, parent: id, hasID: hasID})
	if len(c.stack) > c.deepThreshold && !c.warned {
		c.warned = true
		limit := "unlimited"
		if c.bounded() {
			limit = strconv.Itoa(c.maxDepth)
		}
		c.logger.Infof("describe: traversal reached %d nested values; consider lowering max_depth (currently %s)",
			len(c.stack), limit)
	}
	return nil
}

func (c *controller) pop() {
	f := &c.stack[len(c.stack)-1]
	if f.entered {
		c.release(f.parent, f.hasID)
	}
	*f = frame{}
	c.stack = c.stack[:len(c.stack)-1]
}

// push marks me as an ancestor of the values described until the matching
// release.
func (c *controller) push(me any) (identity, bool) {
	if c.bounded() {
		c.depth++
	}
	id, ok := identityOf(me)
	if ok {
		n, _ := c.onStack.Get(id)
		c.onStack.Put(id, n+1)
	}
	return id, ok
}

func (c *controller) release(id identity, ok bool) {
	if c.bounded() {
		c.depth = invariants.SafeSub(c.depth, 1)
	}
	if !ok {
		return
	}
	switch n, _ := c.onStack.Get(id); {
	case n > 1:
		c.onStack.Put(id, n-1)
	case n == 1:
		c.onStack.Delete(id)
	default:
		if invariants.Enabled {
			panic(errors.AssertionFailedf("describe: releasing identity that is not on the stack"))
		}
	}
}

// unwind releases the ancestors of any frames left on the stack after an
// error.
func (c *controller) unwind() {
	for len(c.stack) > 0 {
		c.pop()
	}
	invariants.Assert(func() error {
		if c.depth != 0 || c.onStack.Len() != 0 {
			return errors.AssertionFailedf("describe: unbalanced traversal: depth=%d on-stack=%d",
				c.depth, c.onStack.Len())
		}
		return nil
	})
}

func (c *controller) atDepthLimit() bool {
	return c.bounded() && c.depth == c.maxDepth
}

// renderBounded renders v, or reports that v is depth limited if it is at the
// depth limit and has children. At the limit, v is rendered with a count
// limit of zero so that only its first element is looked at, and iterators
// are not pulled at all.
func (c *controller) renderBounded(v any) (r *recorder, limited bool, err error) {
	s := c.registry.Lookup(v)
	if !c.atDepthLimit() {
		r, err = c.render(s, v, c.maxCount)
		return r, false, err
	}
	if _, ok := s.(iteratorStrategy); ok {
		return nil, true, nil
	}
	if r, err = c.render(s, v, 0); err != nil {
		return nil, false, err
	}
	if r.children > 0 || r.truncated > 0 {
		return nil, true, nil
	}
	return r, false, nil
}

func (c *controller) render(s Strategy, v any, maxCount int) (*recorder, error) {
	r := &recorder{}
	c.stats.Values++
	if err := s.Render(r, v, maxCount, r.recurse); err != nil {
		return nil, errors.Wrapf(err, "describing %s value", redact.Safe(typeName(v)))
	}
	return r, nil
}

func (c *controller) commit(r *recorder) {
	c.stats.Truncated += r.truncated
}

func (c *controller) write(s string) error {
	if _, err := io.WriteString(c.out, s); err != nil {
		return newSinkError(err)
	}
	return nil
}
