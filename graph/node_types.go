package graph

var nodeKindLabels = map[NodeKind]string{
	KindPerson:    "Person",
	KindAttribute: "Attribute",
}

// collectNodeTypeInfo counts nodes per kind. Persons are listed first.
func collectNodeTypeInfo(nodes []Node) []NodeTypeInfo {
	var nodeTypes []NodeTypeInfo
	for _, kind := range []NodeKind{KindPerson, KindAttribute} {
		info := NodeTypeInfo{Type: kind, Label: nodeKindLabels[kind]}
		for _, n := range nodes {
			if n.Kind != kind {
				continue
			}
			if info.Count == 0 {
				info.Color = n.Color
			}
			info.Count++
		}
		if info.Count > 0 {
			nodeTypes = append(nodeTypes, info)
		}
	}
	return nodeTypes
}
