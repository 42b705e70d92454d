package scan

import (
	"errors"

	"github.com/lwiecaszek/pageread/pkg/mem"
)

var (
	// Diagnostic texts are part of the CLI's output contract
	ErrInvalidAddress   = errors.New("Invalid hpa address")
	ErrUnalignedAddress = errors.New("hpa address must be page aligned")
	ErrInvalidPageCount = errors.New("Invalid number of pages to scan")
	ErrInvalidByteCount = errors.New("Invalid number of bytes to read from the page")
)

// Config carries the parsed scan parameters.
type Config struct {
	Addr  uint64
	Pages int64
	Bytes int64

	Dump   bool
	Cached bool
}

// Validate checks the parameters in the order their diagnostics are
// reported: address first, then page and byte counts. Only zero values
// are rejected; negative counts surface later as mapping errors.
func (c *Config) Validate() error {
	if c.Addr == 0 {
		return ErrInvalidAddress
	}

	if !mem.Aligned(c.Addr) {
		return ErrUnalignedAddress
	}

	if c.Pages == 0 {
		return ErrInvalidPageCount
	}

	if c.Bytes == 0 {
		return ErrInvalidByteCount
	}

	return nil
}

// Mode returns the open mode the parameters select.
func (c *Config) Mode() mem.OpenMode {
	if c.Cached {
		return mem.Cached
	}

	return mem.Uncached
}

// MapSize returns the size of the region the scan spans.
func (c *Config) MapSize() int64 {
	return c.Pages * mem.PageSize
}

// MapOffset returns the page-aligned device offset the scan starts at.
func (c *Config) MapOffset() int64 {
	return int64(c.Addr &^ uint64(mem.PageMask))
}
