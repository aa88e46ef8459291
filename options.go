package massfill

import (
	"maps"
	"math"

	"github.com/agentstation/massfill/pkg/constants"
	"github.com/agentstation/massfill/pkg/errors"
)

// config holds engine settings.
type config struct {
	sourceOffset   int
	templateOffset int
	convertPrice   bool
	priceFactor    float64
	fixedValues    map[string]string
}

// DefaultFixedValues are the constant fills applied to every data row when
// the template has the column.
func DefaultFixedValues() map[string]string {
	return map[string]string{
		constants.TplVariationType: "type",
		constants.TplChannel:       "On",
	}
}

func defaultConfig() *config {
	return &config{
		sourceOffset:   constants.DefaultInstructionRows,
		templateOffset: constants.DefaultInstructionRows,
		priceFactor:    constants.DefaultPriceFactor,
		fixedValues:    DefaultFixedValues(),
	}
}

// Option is a function that configures an Engine
type Option func(*config) error

func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// WithSourceOffset sets the instruction-row count of the sales and shipment
// documents.
func WithSourceOffset(rows int) Option {
	return func(c *config) error {
		if rows < 0 {
			return errors.NewConfigError("engine", "source offset cannot be negative", nil)
		}
		c.sourceOffset = rows
		return nil
	}
}

// WithTemplateOffset sets the instruction-row count of the template.
func WithTemplateOffset(rows int) Option {
	return func(c *config) error {
		if rows < 0 {
			return errors.NewConfigError("engine", "template offset cannot be negative", nil)
		}
		c.templateOffset = rows
		return nil
	}
}

// WithOffset sets both instruction-row counts.
func WithOffset(rows int) Option {
	return func(c *config) error {
		if err := WithSourceOffset(rows)(c); err != nil {
			return err
		}
		return WithTemplateOffset(rows)(c)
	}
}

// WithPriceConversion multiplies every data-region price by factor,
// rounded to two decimals.
func WithPriceConversion(factor float64) Option {
	return func(c *config) error {
		if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
			return errors.NewConfigError("engine", "price factor must be a positive number", nil)
		}
		c.convertPrice = true
		c.priceFactor = factor
		return nil
	}
}

// WithFixedValues replaces the constant fills. A nil or empty map disables
// them.
func WithFixedValues(values map[string]string) Option {
	return func(c *config) error {
		c.fixedValues = maps.Clone(values)
		return nil
	}
}
