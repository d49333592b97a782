package flux

import (
	"fmt"
	"io"
)

// ToDot emits a DOT-format directed graph describing the domains,
// fields, and computed-field dependencies in g. Each domain renders as
// a cluster subgraph; each field is a node, with computed fields drawn
// as boxes; each dependency of a computed field becomes an edge from
// the dependency to the computed field. This is purely informational:
// there is no bit-level contract beyond producing valid DOT syntax.
func (g *Graph) ToDot(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph {"); err != nil {
		return err
	}

	for _, d := range g.domains {
		if _, err := fmt.Fprintf(w, "  subgraph cluster_%s {\n", d.Name()); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "    label=%s;\n", d.Name()); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "    graph [style=dotted];"); err != nil {
			return err
		}

		for _, f := range d.Fields() {
			if _, err := fmt.Fprintf(w, "    %q", f.Name()); err != nil {
				return err
			}
			if _, isComputed := f.(computedFieldBase); isComputed {
				if _, err := fmt.Fprint(w, " [shape=box]"); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, ";"); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w, "  }"); err != nil {
			return err
		}
	}

	for _, d := range g.domains {
		for _, f := range d.Fields() {
			computed, isComputed := f.(computedFieldBase)
			if !isComputed {
				continue
			}
			for _, dep := range computed.dependencies() {
				if _, err := fmt.Fprintf(w, "  %q -> %q;\n", dep.Name(), f.Name()); err != nil {
					return err
				}
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
