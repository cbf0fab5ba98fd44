// Package structure maps a presentation model to the role-tagged logical
// structure tree consumed by the tagging/rendering stage. Roles use the
// standard PDF structure type names so the downstream writer can emit
// them directly.
package structure

import "github.com/wudi/deckkit/model"

// Role is a PDF structure type.
type Role string

const (
	RoleDocument Role = "Document"
	RolePart     Role = "Part"
	RoleSect     Role = "Sect"
	RoleH1       Role = "H1"
	RoleH2       Role = "H2"
	RoleH3       Role = "H3"
	RoleH4       Role = "H4"
	RoleH5       Role = "H5"
	RoleH6       Role = "H6"
	RoleP        Role = "P"
	RoleList     Role = "L"
	RoleListItem Role = "LI"
	RoleLabel    Role = "Lbl"
	RoleListBody Role = "LBody"
	RoleTable    Role = "Table"
	RoleTableRow Role = "TR"
	RoleTH       Role = "TH"
	RoleTD       Role = "TD"
	RoleFigure   Role = "Figure"
	RoleCaption  Role = "Caption"
	RoleSpan     Role = "Span"
	RoleLink     Role = "Link"
	RoleNote     Role = "Note"
)

// Node is one element of the structure tree. Each node owns its children
// outright; the tree is built fresh per conversion and carries no
// back-references.
type Node struct {
	Role       Role               `json:"role"`
	Content    string             `json:"content,omitempty"`
	AltText    string             `json:"alt_text,omitempty"`
	Language   string             `json:"language,omitempty"`
	Children   []*Node            `json:"children,omitempty"`
	Attributes map[string]any     `json:"attributes,omitempty"`
	Bounds     *model.BoundingBox `json:"bounds,omitempty"`

	// ImageData is the raw payload for Figure nodes, embedded by the
	// rendering stage rather than serialized with the tree.
	ImageData []byte `json:"-"`
}

// AddChild appends a child node and returns it.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// Walk visits the node and all descendants depth-first in document order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) { total++ })
	return total
}

var headingRoles = map[int]Role{
	1: RoleH1, 2: RoleH2, 3: RoleH3, 4: RoleH4, 5: RoleH5, 6: RoleH6,
}
