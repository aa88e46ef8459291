package reconciler

import (
	"github.com/agentstation/massfill/pkg/constants"
	"github.com/agentstation/massfill/pkg/errors"
)

// options configures a reconciler.
type options struct {
	sourceOffset int // instruction rows of the sales document
}

func defaultOptions() *options {
	return &options{sourceOffset: constants.DefaultInstructionRows}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithSourceOffset sets the number of instruction rows preceding the sales
// data region.
func WithSourceOffset(rows int) Option {
	return func(o *options) error {
		if rows < 0 {
			return &errors.ValidationError{
				Field:   "source_offset",
				Value:   rows,
				Message: "cannot be negative",
			}
		}
		o.sourceOffset = rows
		return nil
	}
}
