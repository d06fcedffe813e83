package graph

import (
	"strconv"
	"strings"
)

// PersonNodeID is the node id of a person: its numeric id.
func PersonNodeID(personID int) string {
	return strconv.Itoa(personID)
}

// AttributeNodeID is the node id of a person's attribute, e.g. "3_trust".
func AttributeNodeID(personID int, attribute string) string {
	return strconv.Itoa(personID) + "_" + attribute
}

// ParseNodeID splits a node id into the person id and, for attribute nodes,
// the attribute name.
func ParseNodeID(id string) (personID int, attribute string, ok bool) {
	head, attr, hasAttr := strings.Cut(id, "_")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, "", false
	}
	if hasAttr && attr == "" {
		return 0, "", false
	}
	return n, attr, true
}
