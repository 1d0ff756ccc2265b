package debug

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/go-cbor/diag"
	"github.com/signadot/go-cbor/ir"
)

var out io.Writer = os.Stderr

// Diag renders a node in diagnostic notation when formatted.
type Diag struct{ *ir.Node }

func (y Diag) String() string {
	s, err := diag.String(y.Node)
	if err != nil {
		return fmt.Sprintf("[raw *ir.Node] %v", y.Node)
	}
	return s
}

// Logf writes a debug message to stderr. *ir.Node and []byte
// arguments are rendered in diagnostic notation and hex.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case *ir.Node:
			args[i] = Diag{x}.String()
		case []byte:
			args[i] = fmt.Sprintf("h'%x'", x)
		default:
		}
	}
	fmt.Fprintf(out, msg, args...)
}
