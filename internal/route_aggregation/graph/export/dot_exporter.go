package export

import (
	"fmt"
	"strings"

	"github.com/netroute-lab/routeview/internal/route_aggregation/domain"
)

// ToDOT renders nodes and generated links as a Graphviz digraph. Link width
// becomes penwidth and the category becomes the edge color.
func ToDOT(nodes []domain.NodeRef, links []domain.LinkDescriptor, title string) string {
	var b strings.Builder
	b.WriteString("digraph G {\n  rankdir=LR;\n  node [shape=box, style=rounded];\n  edge [dir=none];\n")
	if title != "" {
		b.WriteString(fmt.Sprintf(`  labelloc="t"; label="%s"; fontname="Helvetica";`, escape(title)))
		b.WriteString("\n")
	}

	for _, n := range nodes {
		style := `shape=box,style="rounded,filled",fillcolor="#eef6ff"`
		if n.Kind == domain.NodeMemo {
			style = `shape=note,style="filled",fillcolor="#fff3cd"`
		}
		label := n.Name
		if label == "" {
			label = n.ID
		}
		b.WriteString(fmt.Sprintf(`  "%s" [label="%s", %s];`+"\n", escape(n.ID), escape(label), style))
	}

	for _, l := range links {
		attrs := fmt.Sprintf(`penwidth=%.2f`, l.Width)
		if l.Color != "" {
			attrs += fmt.Sprintf(`, color="%s"`, escape(l.Color))
		} else {
			attrs += `, style=dashed`
		}
		if l.Label != "" {
			attrs += fmt.Sprintf(`, label="%s"`, escape(l.Label))
		}
		b.WriteString(fmt.Sprintf(`  "%s" -> "%s" [%s, tooltip="%s"];`+"\n",
			escape(l.Source), escape(l.Target), attrs, escape(l.ID)))
	}

	b.WriteString("}\n")
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
