package tree

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/tsawler/pdfprobe/core"
)

// Source supplies the records an outline is built from. *core.Document
// satisfies it.
type Source interface {
	// Object returns the record with the given number.
	Object(id int) (core.Object, error)

	// Trailer returns the document trailer dictionary.
	Trailer() core.Dict

	// DeclaredSize returns the record count the document declares, if
	// any.
	DeclaredSize() (int, bool)

	// MaxGeneration returns the highest generation number seen among
	// the records.
	MaxGeneration() int

	// ObjectStreamFor returns the container record that carried the
	// given record, when it arrived inside an object stream.
	ObjectStreamFor(id int) (int, bool)
}

// Option adjusts how an outline is built.
type Option func(*config)

type config struct {
	logger   *zap.SugaredLogger
	maxNodes int
}

// WithLogger routes build diagnostics to l. The default discards them.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l.Sugar()
		}
	}
}

// WithMaxNodes aborts the build once more than n nodes have been
// constructed. Zero means no limit.
func WithMaxNodes(n int) Option {
	return func(c *config) {
		c.maxNodes = n
	}
}

// Outline is the finished tree: every record reachable from the trailer,
// each with exactly one parent, plus the symlink edges for every reference
// that did not become a tree edge.
type Outline struct {
	root     *Node
	nodes    map[int]*Node
	symlinks []SymlinkEdge
	warnings []Warning
	src      Source
}

// Root returns the synthetic trailer node.
func (o *Outline) Root() *Node { return o.root }

// Node returns the node with the given record number, or nil.
func (o *Outline) Node(id int) *Node { return o.nodes[id] }

// NodeCount returns the number of nodes in the outline.
func (o *Outline) NodeCount() int { return len(o.nodes) }

// Symlinks returns the non-tree edges in deterministic order.
func (o *Outline) Symlinks() []SymlinkEdge { return o.symlinks }

// Warnings returns the findings collected while building.
func (o *Outline) Warnings() []Warning { return o.warnings }

// Source returns the record source the outline was built from.
func (o *Outline) Source() Source { return o.src }

// LevelOrder returns every node, breadth first from the root, children in
// discovery order.
func (o *Outline) LevelOrder() []*Node { return levelOrder(o.root) }

func levelOrder(root *Node) []*Node {
	out := []*Node{root}
	for i := 0; i < len(out); i++ {
		out = append(out, out[i].children...)
	}
	return out
}

// Build walks every reference in src outward from the trailer and returns
// the canonical tree. Non-fatal findings come back as warnings alongside
// the outline; structural contradictions abort with a *WalkError.
func Build(src Source, opts ...Option) (*Outline, []Warning, error) {
	cfg := config{logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&cfg)
	}
	w := &walker{
		src:           src,
		log:           cfg.logger,
		cfg:           cfg,
		nodes:         make(map[int]*Node),
		indeterminate: make(map[int]bool),
	}
	if err := w.run(); err != nil {
		return nil, w.warnings, err
	}
	o := &Outline{
		root:     w.root,
		nodes:    w.nodes,
		symlinks: w.symlinks,
		warnings: w.warnings,
		src:      src,
	}
	return o, w.warnings, nil
}

type walker struct {
	src Source
	log *zap.SugaredLogger
	cfg config

	root          *Node
	nodes         map[int]*Node
	queue         []*Node
	indeterminate map[int]bool
	symlinks      []SymlinkEdge
	warnings      []Warning
}

func (w *walker) run() error {
	if err := w.bootstrap(); err != nil {
		return err
	}
	for len(w.queue) > 0 {
		n := w.queue[0]
		w.queue = w.queue[1:]
		if n.processed {
			continue
		}
		n.processed = true
		for _, rel := range discoverReferences(n) {
			if err := w.classify(rel); err != nil {
				return err
			}
		}
	}
	if err := w.resolveIndeterminate(); err != nil {
		return err
	}
	if err := w.repairStrays(); err != nil {
		return err
	}
	w.materializeSymlinks()
	return w.verify()
}

// bootstrap seeds the walk with the trailer as root. The trailer has no
// record number of its own, so it borrows the declared size, which no real
// record uses, or a fallback well above any plausible numbering.
func (w *walker) bootstrap() error {
	trailer := w.src.Trailer()
	if trailer == nil {
		trailer = core.Dict{}
	}
	rootID := TrailerFallbackID
	if size, ok := w.src.DeclaredSize(); ok {
		rootID = size
		if size > nodeCountWarnThreshold {
			w.log.Warnw("unusually large record count declared", "size", size)
		}
	} else {
		w.log.Warnw("document declares no record count")
	}
	root := newNode(trailer, TrailerLabel, rootID)
	root.label = TrailerLabel
	root.kind = TrailerLabel
	w.root = root
	w.nodes[rootID] = root
	w.enqueue(root)
	return nil
}

// classify files one discovered reference into the tree. The rules run in
// order and the first match wins:
//
//  1. the edge already exists as a tree edge: nothing to do
//  2. an explicit parent or child key places the target immediately
//  3. a link key or link-labeled source records a symlink; an unplaced
//     target is deferred for later placement
//  4. a deferred key records the reference and defers the target
//  5. a revisit through an ordinary key must find the target placed or
//     deferred, otherwise the graph is contradictory
//  6. any other reference makes the target a child of its referrer
func (w *walker) classify(rel *Relationship) error {
	from := rel.From
	_, seen := w.nodes[rel.TargetID]
	target, err := w.buildOrFindNode(rel.TargetID, rel.Address)
	if err != nil {
		return err
	}

	switch {
	case target == from.parent || from.hasChild(target):
		w.log.Debugw("reference repeats an existing tree edge", "rel", rel)

	case rel.isParent():
		if err := from.setParent(target); err != nil {
			if !errors.Is(err, errWouldCycle) {
				return walkErr("classify", from.id, err, "upward reference %s", rel)
			}
			w.demoteToSymlink(rel, target)
			break
		}
		w.unmark(target)
		w.enqueue(target)

	case rel.isChild():
		if target.parent != nil {
			w.log.Infow("child reference to an already placed node",
				"rel", rel, "parent", target.parent)
		} else if err := from.addChild(target); err != nil {
			if !errors.Is(err, errWouldCycle) {
				return walkErr("classify", from.id, err, "downward reference %s", rel)
			}
			w.demoteToSymlink(rel, target)
			break
		}
		w.unmark(target)
		w.enqueue(target)

	case rel.isLink():
		target.addNonTreeRelationship(rel)
		if !w.inTree(target) {
			w.mark(target)
			w.enqueue(target)
		}

	case rel.isIndeterminate():
		target.addNonTreeRelationship(rel)
		w.mark(target)
		w.enqueue(target)

	case seen:
		target.addNonTreeRelationship(rel)
		if target.parent == nil && target != w.root && !w.indeterminate[target.id] {
			return walkErr("classify", target.id, ErrOrphanedNode, "referenced again by %s", rel)
		}

	default:
		if err := from.addChild(target); err != nil {
			if !errors.Is(err, errWouldCycle) {
				return walkErr("classify", from.id, err, "reference %s", rel)
			}
			w.demoteToSymlink(rel, target)
			break
		}
		w.enqueue(target)
	}
	return nil
}

// demoteToSymlink keeps a reference that would have bent the tree into a
// cycle as a plain non-tree relationship.
func (w *walker) demoteToSymlink(rel *Relationship, target *Node) {
	w.log.Infow("reference would create a cycle, keeping as symlink", "rel", rel)
	target.addNonTreeRelationship(rel)
}

// buildOrFindNode returns the node for a record number, constructing it on
// first encounter. A record that cannot be fetched still gets a node so
// the surrounding structure stays analyzable, but it is flagged degraded.
func (w *walker) buildOrFindNode(id int, address string) (*Node, error) {
	if n, ok := w.nodes[id]; ok {
		return n, nil
	}
	if w.cfg.maxNodes > 0 && len(w.nodes) >= w.cfg.maxNodes {
		return nil, walkErr("build", id, ErrTooManyNodes, "limit %d", w.cfg.maxNodes)
	}
	obj, err := w.src.Object(id)
	var n *Node
	if err != nil {
		n = newDegradedNode(id, address)
		w.warn(WarnDegradedRecord, id, fmt.Sprintf("record could not be fetched: %v", err))
		w.log.Warnw("record could not be fetched, tree integrity not guaranteed",
			"id", id, "err", err)
	} else {
		n = newNode(obj, address, id)
		if s, ok := obj.(*core.Stream); ok {
			w.attachStream(n, s)
		}
	}
	w.nodes[id] = n
	return n, nil
}

func (w *walker) attachStream(n *Node, s *core.Stream) {
	data, err := s.Decoded()
	if err != nil {
		n.streamLength = DecodeFailureLength
		w.warn(WarnDegradedStream, n.id,
			fmt.Sprintf("stream payload could not be decoded: %v", err))
		w.log.Warnw("stream payload could not be decoded", "node", n, "err", err)
		return
	}
	n.streamData = data
	n.streamLength = len(data)
}

func (w *walker) enqueue(n *Node) {
	if !n.processed {
		w.queue = append(w.queue, n)
	}
}

func (w *walker) mark(n *Node) {
	w.indeterminate[n.id] = true
}

func (w *walker) unmark(n *Node) {
	delete(w.indeterminate, n.id)
}

// inTree reports whether n is connected to the root through parent edges.
func (w *walker) inTree(n *Node) bool {
	for p := n; p != nil; p = p.parent {
		if p == w.root {
			return true
		}
	}
	return false
}

func (w *walker) warn(kind WarningKind, nodeID int, msg string) {
	w.warnings = append(w.warnings, Warning{Kind: kind, NodeID: nodeID, Message: msg})
}

// sortedNodeIDs returns every constructed node's id in ascending order.
func (w *walker) sortedNodeIDs() []int {
	ids := make([]int, 0, len(w.nodes))
	for id := range w.nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
