package flux

import (
	"fmt"
	"io"

	"github.com/m1gwings/treedrawer/tree"
)

// PrintTree renders domain as an ASCII tree of its fields -- plain
// fields, relation fields (marked with their remote domain), and
// computed fields (marked with their dependency count) -- to w. It is
// a debugging aid, the ASCII-art counterpart of Graph.ToDot for
// inspecting a single domain's shape in a terminal.
func PrintTree(w io.Writer, d domainBase) error {
	root := tree.NewTree(tree.NodeString(d.Name()))

	for _, f := range d.Fields() {
		root.AddChild(tree.NodeString(fieldLabel(f)))
	}

	_, err := fmt.Fprintln(w, root)
	return err
}

func fieldLabel(f fieldBase) string {
	switch tf := f.(type) {
	case computedFieldBase:
		return fmt.Sprintf("%s (computed, %d deps)", f.Name(), len(tf.dependencies()))
	case relationFieldBase:
		return fmt.Sprintf("%s (-> %s)", f.Name(), tf.remoteDomainAny().Name())
	default:
		return f.Name()
	}
}
