// Package jsontree builds an order-preserving tree from a JSON
// document and flattens its currently-visible structure into a
// sequence of renderable syntax rows.
package jsontree

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Kind discriminates the three shapes a Node can take.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindLeaf
)

type objectEntry struct {
	Key  string
	Node *Node
}

// Node is a parsed JSON value. Objects preserve source key order;
// arrays preserve source order; containers additionally carry a
// visible flag toggled independently of the parsed document.
type Node struct {
	kind           Kind
	objectChildren []objectEntry
	objectIndex    map[string]int
	arrayChildren  []*Node
	visible        bool
	leaf           interface{}
}

// Kind returns the node's shape.
func (n *Node) Kind() Kind { return n.kind }

// Visible reports whether a container's children are currently
// flattened (always true for a leaf).
func (n *Node) Visible() bool { return n.visible }

// Leaf returns the node's scalar value: nil, bool, json.Number, or
// string. It is meaningless for containers.
func (n *Node) Leaf() interface{} { return n.leaf }

// ObjectKeys returns an object node's keys in source order.
func (n *Node) ObjectKeys() []string {
	keys := make([]string, len(n.objectChildren))
	for i, e := range n.objectChildren {
		keys[i] = e.Key
	}
	return keys
}

// ObjectGet returns the child at key, for an object node.
func (n *Node) ObjectGet(key string) (*Node, bool) {
	idx, ok := n.objectIndex[key]
	if !ok {
		return nil, false
	}
	return n.objectChildren[idx].Node, true
}

// ArrayChildren returns an array node's children in source order.
func (n *Node) ArrayChildren() []*Node { return n.arrayChildren }

func newLeaf(v interface{}) *Node {
	return &Node{kind: KindLeaf, visible: true, leaf: v}
}

// Parse builds a Node tree from a JSON document. Numbers are kept as
// json.Number so round-tripping never loses integer precision.
func Parse(doc string) (*Node, error) {
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.UseNumber()
	n, err := parseValue(dec)
	if err != nil {
		return nil, errors.Wrap(err, "jsontree: parse")
	}
	return n, nil
}

func parseValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, errors.Errorf("jsontree: unexpected delimiter %q", t)
		}
	case json.Number, string, bool, nil:
		return newLeaf(t), nil
	default:
		return nil, errors.Errorf("jsontree: unexpected token %v", tok)
	}
}

func parseObject(dec *json.Decoder) (*Node, error) {
	n := &Node{kind: KindObject, visible: true, objectIndex: map[string]int{}}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.Errorf("jsontree: expected object key, got %v", keyTok)
		}
		child, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		n.objectIndex[key] = len(n.objectChildren)
		n.objectChildren = append(n.objectChildren, objectEntry{Key: key, Node: child})
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return n, nil
}

func parseArray(dec *json.Decoder) (*Node, error) {
	n := &Node{kind: KindArray, visible: true}
	for dec.More() {
		child, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		n.arrayChildren = append(n.arrayChildren, child)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, err
	}
	return n, nil
}

// PathSegment is one step of a Path: either an object key or an
// array index.
type PathSegment struct {
	Key   string
	Index int
	IsKey bool
}

// KeySegment builds an object-key path segment.
func KeySegment(key string) PathSegment { return PathSegment{Key: key, IsKey: true} }

// IndexSegment builds an array-index path segment.
func IndexSegment(i int) PathSegment { return PathSegment{Index: i} }

// Path locates a node from the root.
type Path []PathSegment

func clonePath(p Path) Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Get walks path from n and returns the node there, or nil if any
// segment doesn't resolve.
func (n *Node) Get(path Path) *Node {
	cur := n
	for _, seg := range path {
		if seg.IsKey {
			if cur.kind != KindObject {
				return nil
			}
			child, ok := cur.ObjectGet(seg.Key)
			if !ok {
				return nil
			}
			cur = child
		} else {
			if cur.kind != KindArray || seg.Index < 0 || seg.Index >= len(cur.arrayChildren) {
				return nil
			}
			cur = cur.arrayChildren[seg.Index]
		}
	}
	return cur
}

// Toggle flips the visible flag of the container at path. It is a
// no-op on leaves or unresolved paths.
func (n *Node) Toggle(path Path) {
	node := n.Get(path)
	if node == nil {
		return
	}
	if node.kind == KindObject || node.kind == KindArray {
		node.visible = !node.visible
	}
}

// SyntaxKind classifies a flattened Row.
type SyntaxKind int

const (
	SyntaxMapStart SyntaxKind = iota
	SyntaxMapEnd
	SyntaxMapFolded
	SyntaxMapEntry
	SyntaxArrayStart
	SyntaxArrayEnd
	SyntaxArrayFolded
	SyntaxArrayEntry
)

// KeyValue pairs an object key with its leaf value, carried by a
// MapEntry row.
type KeyValue struct {
	Key   string
	Value interface{}
}

// Row is one flattened, renderable line of the tree.
type Row struct {
	Kind   SyntaxKind
	Key    *string // set for *Start/*Folded rows that are themselves a map entry
	KV     *KeyValue
	Value  interface{} // set for ArrayEntry
	Path   Path
	IsLast bool
	Indent int
}

func lastKeySegment(path Path) *string {
	if len(path) == 0 {
		return nil
	}
	last := path[len(path)-1]
	if !last.IsKey {
		return nil
	}
	key := last.Key
	return &key
}

// FlattenVisibles walks the tree depth-first, emitting a Row per
// visible line: Start/End pairs around an expanded container's
// children, a single Folded row for a collapsed one, and an entry
// row for each leaf.
func (n *Node) FlattenVisibles() []Row {
	var rows []Row
	flattenInto(n, Path{}, &rows, true, 0)
	return rows
}

func flattenInto(n *Node, path Path, rows *[]Row, isLast bool, indent int) {
	switch n.kind {
	case KindObject:
		key := lastKeySegment(path)
		if n.visible {
			*rows = append(*rows, Row{Kind: SyntaxMapStart, Key: key, Path: clonePath(path), Indent: indent})
			for i, e := range n.objectChildren {
				branch := append(clonePath(path), KeySegment(e.Key))
				flattenInto(e.Node, branch, rows, i == len(n.objectChildren)-1, indent+1)
			}
			*rows = append(*rows, Row{Kind: SyntaxMapEnd, IsLast: isLast, Indent: indent})
		} else {
			*rows = append(*rows, Row{Kind: SyntaxMapFolded, Key: key, Path: clonePath(path), IsLast: isLast, Indent: indent})
		}
	case KindArray:
		key := lastKeySegment(path)
		if n.visible {
			*rows = append(*rows, Row{Kind: SyntaxArrayStart, Key: key, Path: clonePath(path), Indent: indent})
			for i, c := range n.arrayChildren {
				branch := append(clonePath(path), IndexSegment(i))
				flattenInto(c, branch, rows, i == len(n.arrayChildren)-1, indent+1)
			}
			*rows = append(*rows, Row{Kind: SyntaxArrayEnd, IsLast: isLast, Indent: indent})
		} else {
			*rows = append(*rows, Row{Kind: SyntaxArrayFolded, Key: key, Path: clonePath(path), IsLast: isLast, Indent: indent})
		}
	case KindLeaf:
		if len(path) > 0 && path[len(path)-1].IsKey {
			key := path[len(path)-1].Key
			*rows = append(*rows, Row{Kind: SyntaxMapEntry, KV: &KeyValue{Key: key, Value: n.leaf}, Path: clonePath(path), IsLast: isLast, Indent: indent})
		} else {
			*rows = append(*rows, Row{Kind: SyntaxArrayEntry, Value: n.leaf, Path: clonePath(path), IsLast: isLast, Indent: indent})
		}
	}
}
