package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/teranos/auragraph/graph"
	"github.com/teranos/auragraph/layout"
	"github.com/teranos/auragraph/population"
	"github.com/teranos/auragraph/sym"
)

const undefined = "-"

// PersonsTable builds one row per person with a column per attribute.
// Undefined attributes show as "-".
func PersonsTable(persons []population.Person, attributes []string) pterm.TableData {
	header := []string{"ID", "Name"}
	header = append(header, attributes...)
	header = append(header, "Defined", "Aura")

	data := pterm.TableData{header}
	for _, p := range persons {
		row := []string{strconv.Itoa(p.ID), p.Name}
		for _, a := range attributes {
			if v, ok := p.Attributes.Get(a); ok {
				row = append(row, strconv.Itoa(v))
			} else {
				row = append(row, undefined)
			}
		}
		row = append(row, fmt.Sprintf("%d/%d", p.DefinedCount(), len(p.Preferences)), formatFloat(p.PersonalAuraRadius))
		data = append(data, row)
	}
	return data
}

// PreferencesTable builds one row per preference of p, with the person's own value.
func PreferencesTable(p population.Person) pterm.TableData {
	data := pterm.TableData{{"Attribute", "Own value", "Prefers", "Sign", "Weight"}}
	for _, name := range p.Preferences.Names() {
		pref := p.Preferences[name]
		own := undefined
		if v, ok := p.Attributes.Get(name); ok {
			own = strconv.Itoa(v)
		}
		data = append(data, []string{name, own, strconv.Itoa(pref.Value), string(pref.Sign), strconv.Itoa(pref.Weight)})
	}
	return data
}

// NodesTable lists graph nodes with their marker glyph.
func NodesTable(g *graph.Graph) pterm.TableData {
	data := pterm.TableData{{"", "ID", "Label", "Value", "Color"}}
	for _, n := range g.Nodes {
		label := n.Label
		if n.Kind == graph.KindAttribute {
			label = fmt.Sprintf("%s = %d", n.Attribute, n.AttributeValue)
		}
		data = append(data, []string{sym.NodeMarker(string(n.Kind), n.Focal), n.ID, label, formatFloat(n.Value), n.Color})
	}
	return data
}

// StatsTable summarizes graph counts.
func StatsTable(g *graph.Graph) pterm.TableData {
	s := g.Meta.Stats
	return pterm.TableData{
		{"Persons", "Attributes", "Direct", "Indirect", "Person", "Dropped"},
		{
			strconv.Itoa(s.Persons), strconv.Itoa(s.AttributeNodes),
			strconv.Itoa(s.DirectEdges), strconv.Itoa(s.IndirectEdges),
			strconv.Itoa(s.PersonEdges), strconv.Itoa(s.DroppedEdges),
		},
	}
}

// PositionsTable lists node positions of a frame.
func PositionsTable(f layout.Frame) pterm.TableData {
	data := pterm.TableData{{"ID", "X", "Y", "Pinned"}}
	for _, n := range f.Nodes {
		pinned := ""
		if n.Fixed {
			pinned = "yes"
		}
		data = append(data, []string{n.ID, fmt.Sprintf("%.1f", n.X), fmt.Sprintf("%.1f", n.Y), pinned})
	}
	return data
}

// RenderTable prints data with a header row.
func RenderTable(data pterm.TableData) error {
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
}

// RenderTableTo prints data with a header row to w.
func RenderTableTo(w io.Writer, data pterm.TableData) error {
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).WithWriter(w).Render()
}

// Section prints a section heading.
func Section(title string) {
	pterm.DefaultSection.Println(title)
}

// FrameLine is the one-line summary of a frame for progress output.
func FrameLine(f layout.Frame) string {
	return fmt.Sprintf("%s tick %d  alpha %.4f  %s", sym.Pulse, f.Tick, f.Alpha, f.State)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
