package graph

import (
	"time"
)

// NodeKind distinguishes person nodes from attribute nodes
type NodeKind string

const (
	KindPerson    NodeKind = "PERSON"
	KindAttribute NodeKind = "ATTRIBUTE"
)

// Link types
const (
	LinkDirect   = "direct"   // person to one of its attributes
	LinkIndirect = "indirect" // same-named attributes of different persons
	LinkPerson   = "person"   // focal person to another person
)

// Graph represents the complete graph structure for layout and rendering
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
	Meta  Meta   `json:"meta"`
}

// Node represents a person or one of a person's defined attributes
type Node struct {
	ID        string   `json:"id"`
	Kind      NodeKind `json:"kind"`
	Label     string   `json:"label"`      // Empty when names are hidden
	Value     float64  `json:"value"`      // Radius-like size, also the collision radius
	Color     string   `json:"color"`      // Solid fill
	AuraColor string   `json:"aura_color"` // Fill of the aura, carries the configured opacity
	Group     string   `json:"group,omitempty"`

	// Attribute nodes only. OwnerPersonID is a back-reference, not ownership.
	OwnerPersonID  *int   `json:"owner_person_id,omitempty"`
	Attribute      string `json:"attribute,omitempty"`
	AttributeValue int    `json:"attribute_value,omitempty"`

	PersonID *int `json:"person_id,omitempty"` // Person nodes only
	Focal    bool `json:"focal,omitempty"`
}

// Link represents an edge with the distance the link force pulls it toward
type Link struct {
	Source   string  `json:"source"` // Node ID
	Target   string  `json:"target"` // Node ID
	Type     string  `json:"type"`
	Distance float64 `json:"distance"`    // Resting distance
	Indirect bool    `json:"is_indirect"` // Light edge with a weaker pull
	Strength float64 `json:"strength"`    // Link force strength
}

// Meta contains metadata about the graph
type Meta struct {
	GeneratedAt       time.Time              `json:"generated_at"`
	Stats             Stats                  `json:"stats"`
	Config            map[string]string      `json:"config"`
	NodeTypes         []NodeTypeInfo         `json:"node_types"`
	RelationshipTypes []RelationshipTypeInfo `json:"relationship_types"`
	Error             map[string]string      `json:"error,omitempty"` // Set when the graph is empty because of an error
}

// NodeTypeInfo describes a node kind present in the graph
type NodeTypeInfo struct {
	Type  NodeKind `json:"type"`
	Label string   `json:"label"`
	Color string   `json:"color,omitempty"` // Color of the first node of this kind
	Count int      `json:"count"`
}

// RelationshipTypeInfo describes a link type with its layout physics
type RelationshipTypeInfo struct {
	Type         string  `json:"type"`
	Label        string  `json:"label"`
	LinkStrength float64 `json:"link_strength"`
	Indirect     bool    `json:"is_indirect"`
	Count        int     `json:"count"`
}

// Stats provides graph statistics
type Stats struct {
	Persons        int `json:"persons"`
	AttributeNodes int `json:"attribute_nodes"`
	DirectEdges    int `json:"direct_edges"`
	IndirectEdges  int `json:"indirect_edges"`
	PersonEdges    int `json:"person_edges"`
	DroppedEdges   int `json:"dropped_edges,omitempty"`
	TotalNodes     int `json:"total_nodes"`
	TotalEdges     int `json:"total_edges"`
}

// Empty reports whether the graph has no nodes
func (g *Graph) Empty() bool {
	return g == nil || len(g.Nodes) == 0
}

// Node returns the node with the given id
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeIDs returns every node id in graph order
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}
