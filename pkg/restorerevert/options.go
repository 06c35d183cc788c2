package restorerevert

import (
	"io"
	"os"
)

// Option configures the walker, executor and reverter.
type Option func(*options)

type options struct {
	out    io.Writer
	errOut io.Writer
}

// WithOutput sets where report lines go. Warnings and errors use errOut.
func WithOutput(out, errOut io.Writer) Option {
	return func(o *options) {
		if out != nil {
			o.out = out
		}
		if errOut != nil {
			o.errOut = errOut
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) console() *console {
	return &console{out: o.out, errOut: o.errOut}
}
