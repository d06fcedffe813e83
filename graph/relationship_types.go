package graph

import "sort"

var linkTypeLabels = map[string]string{
	LinkDirect:   "Has attribute",
	LinkIndirect: "Shares attribute",
	LinkPerson:   "Relates to",
}

// collectRelationshipTypeInfo summarizes the link types present in the graph
// with the strength the layout applies to them.
// Returns the most common types first.
func collectRelationshipTypeInfo(links []Link) []RelationshipTypeInfo {
	byType := make(map[string]*RelationshipTypeInfo)
	for _, link := range links {
		info, ok := byType[link.Type]
		if !ok {
			label := linkTypeLabels[link.Type]
			if label == "" {
				label = link.Type
			}
			info = &RelationshipTypeInfo{
				Type:         link.Type,
				Label:        label,
				LinkStrength: link.Strength,
				Indirect:     link.Indirect,
			}
			byType[link.Type] = info
		}
		info.Count++
	}

	relationshipTypes := make([]RelationshipTypeInfo, 0, len(byType))
	for _, info := range byType {
		relationshipTypes = append(relationshipTypes, *info)
	}
	sort.Slice(relationshipTypes, func(i, j int) bool {
		if relationshipTypes[i].Count != relationshipTypes[j].Count {
			return relationshipTypes[i].Count > relationshipTypes[j].Count
		}
		return relationshipTypes[i].Type < relationshipTypes[j].Type
	})
	return relationshipTypes
}
