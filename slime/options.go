package slime

import (
	"io"
	"log"
)

// DefaultMaxPayloadSize bounds the declared compressed and uncompressed payload sizes.
const DefaultMaxPayloadSize = 1 << 30

type options struct {
	logger         *log.Logger
	minIndexBits   int
	maxPayloadSize int64
}

// Option configures Decode.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:         log.New(io.Discard, "", 0),
		maxPayloadSize: DefaultMaxPayloadSize,
	}
}

// WithLogger sends decode traces to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMinIndexBits sets a floor for the width of packed palette indices. Zero, the default, uses
// the smallest width that can hold the largest palette index.
func WithMinIndexBits(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.minIndexBits = n
		}
	}
}

// WithMaxPayloadSize rejects worlds declaring a payload larger than n bytes.
func WithMaxPayloadSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPayloadSize = n
		}
	}
}
