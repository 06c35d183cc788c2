package restorerevert

import (
	"fmt"
	"io"
)

// console writes the human readable report.
type console struct {
	out    io.Writer
	errOut io.Writer
}

func (c *console) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *console) warn(msg string) {
	_, _ = fmt.Fprintf(c.errOut, "WARN: %s\n", msg)
}
