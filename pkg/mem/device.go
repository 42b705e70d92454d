package mem

import (
	"math"
	"os"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

// OpenMode selects the synchronization flags a device is opened with.
type OpenMode int

const (
	// Uncached opens with O_SYNC and O_DSYNC so reads bypass caching
	// wherever the device driver honors it.
	Uncached OpenMode = iota
	// Cached opens with O_SYNC only.
	Cached
)

func (m OpenMode) Flags() int {
	if m == Cached {
		return os.O_RDONLY | unix.O_SYNC
	}

	return os.O_RDONLY | unix.O_SYNC | unix.O_DSYNC
}

func (m OpenMode) String() string {
	if m == Cached {
		return "O_RDONLY | O_SYNC"
	}

	return "O_RDONLY | O_SYNC | O_DSYNC"
}

type Device struct {
	file *os.File
	path string
	mode OpenMode
}

func OpenDevice(path string, mode OpenMode) (*Device, error) {
	file, err := os.OpenFile(path, mode.Flags(), 0)
	if err != nil {
		return nil, err
	}

	return &Device{
		file: file,
		path: path,
		mode: mode,
	}, nil
}

func (d *Device) Path() string {
	return d.path
}

func (d *Device) Mode() OpenMode {
	return d.mode
}

// Map establishes a shared read-only mapping of size bytes starting at
// the page-aligned offset.
func (d *Device) Map(size, offset int64) (*Mapping, error) {
	if d.file == nil {
		return nil, os.NewSyscallError("mmap", unix.EBADF)
	}

	if size <= 0 || size > int64(math.MaxInt) {
		return nil, os.NewSyscallError("mmap", unix.EINVAL)
	}

	if offset < 0 || offset&PageMask != 0 {
		return nil, os.NewSyscallError("mmap", unix.EINVAL)
	}

	slice, err := mmap.MapRegion(d.file, int(size), mmap.RDONLY, 0, offset)
	if err != nil {
		return nil, os.NewSyscallError("mmap", err)
	}

	return &Mapping{
		slice: slice,
	}, nil
}

// Close releases the device handle. A second call is a no-op.
func (d *Device) Close() error {
	if d.file == nil {
		return nil
	}

	if err := d.file.Close(); err != nil {
		return err
	}

	d.file = nil

	return nil
}
