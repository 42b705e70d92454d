package scan

import (
	"fmt"
	"io"
	"os"

	"github.com/lwiecaszek/pageread/pkg/mem"
)

// View is the read surface a scan walks. mem.Mapping implements it;
// tests substitute in-memory fakes.
type View interface {
	ByteAt(off int64) (byte, error)
	Size() int64
}

type Options struct {
	Dump bool
	Out  io.Writer
}

type Hooks struct {
	OnPage func(page int64) error
}

type Report struct {
	Pages int64
	Bytes int64
	Sum   uint64
}

func (r *Report) Summary() string {
	return fmt.Sprintf("%d pages touched (%d bytes in each page)", r.Pages, r.Bytes)
}

type Scanner struct {
	view  View
	pages int64
	bytes int64

	options *Options
	hooks   *Hooks
}

func NewScanner(
	view View,
	pages int64,
	bytes int64,

	options *Options,
	hooks *Hooks,
) *Scanner {
	if options == nil {
		options = &Options{}
	}
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if hooks == nil {
		hooks = &Hooks{}
	}

	return &Scanner{
		view:  view,
		pages: pages,
		bytes: bytes,

		options: options,
		hooks:   hooks,
	}
}

// Scan walks the view page by page, reading the first bytes of each
// page and accumulating their values. With dumping enabled it writes a
// marker line per page and a hex line each time a sixteen byte boundary
// is crossed within a page; the byte on the boundary is the one
// printed.
func (s *Scanner) Scan() (*Report, error) {
	sum := uint64(0)

	for i := int64(0); i < s.pages; i++ {
		if s.options.Dump {
			if _, err := fmt.Fprintf(s.options.Out, "page: %d\n", i); err != nil {
				return nil, err
			}
		}

		for j := int64(0); j < s.bytes; j++ {
			c, err := s.view.ByteAt(i*mem.PageSize + j)
			if err != nil {
				return nil, err
			}

			if s.options.Dump && j > 0 && j%16 == 0 {
				if _, err := fmt.Fprintf(s.options.Out, "%02x \n", c); err != nil {
					return nil, err
				}
			}

			sum += uint64(c)
		}

		if s.hooks.OnPage != nil {
			if err := s.hooks.OnPage(i); err != nil {
				return nil, err
			}
		}
	}

	return &Report{
		Pages: s.pages,
		Bytes: s.bytes,
		Sum:   sum,
	}, nil
}
