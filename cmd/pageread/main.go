package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lwiecaszek/pageread/pkg/mem"
	"github.com/lwiecaszek/pageread/pkg/scan"
	"github.com/lwiecaszek/pageread/pkg/utils"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// reason renders a failure cause the way strerror does, falling back to
// the raw error text when no errno is present.
func reason(err error) string {
	if errno := utils.ErrnoOf(err); errno != 0 {
		return errno.Error()
	}

	return err.Error()
}

func run() int {
	fmt.Printf("%s - version: %s\n", os.Args[0], version)

	config := &scan.Config{}

	flag.Uint64Var(&config.Addr, "a", 0, "HPA address to start reading pages from")
	flag.Uint64Var(&config.Addr, "addr", 0, "HPA address to start reading pages from")
	flag.Int64Var(&config.Pages, "p", 1, "Number of pages to span")
	flag.Int64Var(&config.Pages, "pages", 1, "Number of pages to span")
	flag.Int64Var(&config.Bytes, "b", 1, "Number of bytes to read from each page")
	flag.Int64Var(&config.Bytes, "bytes", 1, "Number of bytes to read from each page")
	flag.BoolVar(&config.Dump, "d", false, "Dump read data to the console")
	flag.BoolVar(&config.Dump, "dump", false, "Dump read data to the console")
	flag.BoolVar(&config.Cached, "c", false, "Use cached mappings")
	flag.BoolVar(&config.Cached, "cached", false, "Use cached mappings")

	help := false
	flag.BoolVar(&help, "h", false, "Print this help message")
	flag.BoolVar(&help, "help", false, "Print this help message")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "\nUsage: %s [option(s)]\n"+
			"\t -a|--addr=<value>     : HPA address to start reading pages from\n"+
			"\t[-p|--pages=<value>]   : Number of pages to span (default: 1)\n"+
			"\t[-b|--bytes=<value>]   : Number of bytes to read from each page (default: 1)\n"+
			"\t[-d|--dump]            : Dump read data to the console (default: Data are not dumped)\n"+
			"\t[-c|--cached]          : Use cached mappings (default: Memory access is not cached)\n"+
			"\t[-h|--help]            : Print this help message",
			os.Args[0],
		)
	}

	flag.Parse()

	if help {
		flag.Usage()

		return 0
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()

		return 1
	}

	device, err := mem.OpenDevice(mem.DefaultDevicePath, config.Mode())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open(%s, %s) failed with code %d (%s)\n", mem.DefaultDevicePath, config.Mode(), int(utils.ErrnoOf(err)), reason(err))

		return 1
	}
	defer device.Close()

	fmt.Printf("%s opened\n", mem.DefaultDevicePath)

	mapping, err := device.Map(config.MapSize(), config.MapOffset())
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmap(0, 0x%x, PROT_READ, MAP_SHARED, fd, 0x%x) failed with code %d (%s)\n", uint64(config.MapSize()), config.Addr, int(utils.ErrnoOf(err)), reason(err))

		return 1
	}
	defer mapping.Unmap()

	report, err := scan.NewScanner(mapping, config.Pages, config.Bytes, &scan.Options{
		Dump: config.Dump,
		Out:  os.Stdout,
	}, nil).Scan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read of mapped page failed (%v)\n", err)

		return 1
	}

	base := mapping.Addr()
	if err := mapping.Unmap(); err != nil {
		fmt.Fprintf(os.Stderr, "munmap(0x%x, 0x%x) failed with code %d (%s)\n", base, uint64(config.MapSize()), int(utils.ErrnoOf(err)), reason(err))

		return 1
	}

	_ = device.Close()

	fmt.Printf("%s\n", report.Summary())

	return int(report.Sum & 0xff)
}
