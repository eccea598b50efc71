package authoring

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// PathSeparator joins category labels in a rendered category path.
const PathSeparator = " > "

type TreeNode struct {
	ID        string      `json:"id" yaml:"id"`
	Label     string      `json:"label" yaml:"label"`
	IsChecked bool        `json:"is_checked" yaml:"-"`
	Children  []*TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// CategoryTree is a category taxonomy in which at most one node is
// checked at any time.
type CategoryTree struct {
	Roots []*TreeNode `json:"roots" yaml:"categories"`
}

func NewCategoryTree(roots ...*TreeNode) *CategoryTree {
	return &CategoryTree{Roots: roots}
}

// SelectPath checks the node reached by matching labels top-down from the
// roots. An unresolvable path leaves the tree untouched and returns false.
func (t *CategoryTree) SelectPath(labels []string) bool {
	target := t.resolve(labels)
	if target == nil {
		return false
	}

	t.ClearAll()
	target.IsChecked = true
	return true
}

// Resolve reports whether labels name a node, without changing the
// selection.
func (t *CategoryTree) Resolve(labels []string) bool {
	return t.resolve(labels) != nil
}

func (t *CategoryTree) resolve(labels []string) *TreeNode {
	if len(labels) == 0 {
		return nil
	}

	level := t.Roots
	var target *TreeNode
	for _, label := range labels {
		target = nil
		for _, node := range level {
			if node.Label == label {
				target = node
				break
			}
		}
		if target == nil {
			return nil
		}
		level = target.Children
	}
	return target
}

// ToggleCheck selects nodeID when checked is true. Unchecking always clears
// the whole tree, not only nodeID. Unknown ids are ignored.
func (t *CategoryTree) ToggleCheck(nodeID string, checked bool) {
	node := t.Find(nodeID)
	if node == nil {
		return
	}

	t.ClearAll()
	if checked {
		node.IsChecked = true
	}
}

// SelectedPath returns the label path of the deepest checked node, or ""
// when nothing is selected.
func (t *CategoryTree) SelectedPath() string {
	labels := selectedLabels(t.Roots, nil)
	if labels == nil {
		return ""
	}
	return strings.Join(labels, PathSeparator)
}

func selectedLabels(nodes []*TreeNode, prefix []string) []string {
	for _, node := range nodes {
		labels := append(append([]string(nil), prefix...), node.Label)
		if deeper := selectedLabels(node.Children, labels); deeper != nil {
			return deeper
		}
		if node.IsChecked {
			return labels
		}
	}
	return nil
}

// PathToNode returns the ids from a root down to nodeID.
func (t *CategoryTree) PathToNode(nodeID string) ([]string, bool) {
	nodes := t.nodePath(nodeID)
	if nodes == nil {
		return nil, false
	}
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids, true
}

// LabelPath returns the labels from a root down to nodeID.
func (t *CategoryTree) LabelPath(nodeID string) ([]string, bool) {
	nodes := t.nodePath(nodeID)
	if nodes == nil {
		return nil, false
	}
	labels := make([]string, len(nodes))
	for i, n := range nodes {
		labels[i] = n.Label
	}
	return labels, true
}

func (t *CategoryTree) nodePath(nodeID string) []*TreeNode {
	var walk func(nodes []*TreeNode, trail []*TreeNode) []*TreeNode
	walk = func(nodes []*TreeNode, trail []*TreeNode) []*TreeNode {
		for _, node := range nodes {
			next := append(append([]*TreeNode(nil), trail...), node)
			if node.ID == nodeID {
				return next
			}
			if found := walk(node.Children, next); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(t.Roots, nil)
}

func (t *CategoryTree) Find(nodeID string) *TreeNode {
	nodes := t.nodePath(nodeID)
	if nodes == nil {
		return nil
	}
	return nodes[len(nodes)-1]
}

func (t *CategoryTree) ClearAll() {
	t.walk(func(n *TreeNode) { n.IsChecked = false })
}

// SelectedID returns the id of the checked node, or "".
func (t *CategoryTree) SelectedID() string {
	var id string
	t.walk(func(n *TreeNode) {
		if n.IsChecked && id == "" {
			id = n.ID
		}
	})
	return id
}

// CheckedCount returns how many nodes are checked tree-wide.
func (t *CategoryTree) CheckedCount() int {
	count := 0
	t.walk(func(n *TreeNode) {
		if n.IsChecked {
			count++
		}
	})
	return count
}

func (t *CategoryTree) walk(fn func(*TreeNode)) {
	var visit func(nodes []*TreeNode)
	visit = func(nodes []*TreeNode) {
		for _, n := range nodes {
			fn(n)
			visit(n.Children)
		}
	}
	visit(t.Roots)
}

// Clone deep-copies the tree, selection included.
func (t *CategoryTree) Clone() *CategoryTree {
	return &CategoryTree{Roots: cloneNodes(t.Roots)}
}

func cloneNodes(nodes []*TreeNode) []*TreeNode {
	if nodes == nil {
		return nil
	}
	out := make([]*TreeNode, len(nodes))
	for i, n := range nodes {
		out[i] = &TreeNode{
			ID:        n.ID,
			Label:     n.Label,
			IsChecked: n.IsChecked,
			Children:  cloneNodes(n.Children),
		}
	}
	return out
}

// Validate rejects trees with empty or repeated node ids.
func (t *CategoryTree) Validate() error {
	seen := make(map[string]bool)
	var err error
	t.walk(func(n *TreeNode) {
		if err != nil {
			return
		}
		if n.ID == "" || n.Label == "" {
			err = fmt.Errorf("category node needs both id and label (id=%q label=%q)", n.ID, n.Label)
			return
		}
		if seen[n.ID] {
			err = fmt.Errorf("%w: %s", ErrDuplicateCategory, n.ID)
			return
		}
		seen[n.ID] = true
	})
	return err
}

// ParsePath splits a rendered category path. Both " > " and "/" separators
// are accepted.
func ParsePath(path string) []string {
	sep := PathSeparator
	if !strings.Contains(path, PathSeparator) {
		if strings.Contains(path, "/") {
			sep = "/"
		} else if strings.Contains(path, ">") {
			sep = ">"
		}
	}

	var labels []string
	for _, part := range strings.Split(path, sep) {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

// LoadCategoryTree reads a YAML taxonomy of the form
//
//	categories:
//	  - id: toeic
//	    label: TOEIC
//	    children: [...]
func LoadCategoryTree(r io.Reader) (*CategoryTree, error) {
	var tree CategoryTree
	if err := yaml.NewDecoder(r).Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to decode category tree: %w", err)
	}
	if len(tree.Roots) == 0 {
		return nil, fmt.Errorf("category tree has no categories")
	}
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return &tree, nil
}

func node(id, label string, children ...*TreeNode) *TreeNode {
	return &TreeNode{ID: id, Label: label, Children: children}
}

// DefaultCategoryTree returns the built-in taxonomy.
func DefaultCategoryTree() *CategoryTree {
	return NewCategoryTree(
		node("toeic", "TOEIC",
			node("toeic-lc", "Listening",
				node("toeic-lc-p1", "Part: Photographs"),
				node("toeic-lc-p2", "Part: Question-Response"),
				node("toeic-lc-p3", "Part: Conversations"),
				node("toeic-lc-p4", "Part: Talks"),
			),
			node("toeic-rc", "Reading",
				node("toeic-rc-p5", "Part: Incomplete Sentences"),
				node("toeic-rc-p6", "Part: Text Completion"),
				node("toeic-rc-p7", "Part: Reading Comprehension"),
			),
		),
		node("toefl", "TOEFL",
			node("toefl-reading", "Reading"),
			node("toefl-listening", "Listening"),
			node("toefl-speaking", "Speaking"),
			node("toefl-writing", "Writing"),
		),
		node("ielts", "IELTS",
			node("ielts-listening", "Listening"),
			node("ielts-reading", "Reading"),
			node("ielts-writing", "Writing"),
			node("ielts-speaking", "Speaking"),
		),
		node("school", "School English",
			node("school-grammar", "Grammar"),
			node("school-vocabulary", "Vocabulary"),
			node("school-reading", "Reading"),
		),
	)
}
