// Package output defines the sink interface consuming the record stream.
// Implementations live in subpackages.
package output

import "github.com/kimlab/thermolog/pkg/acquire"

// Output consumes acquisition records in the order they were produced.
type Output interface {
	Publish(rec acquire.Record) error
	Close() error
}
