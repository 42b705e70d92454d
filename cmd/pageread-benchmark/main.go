package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/lwiecaszek/pageread/pkg/mem"
	"github.com/lwiecaszek/pageread/pkg/scan"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

func main() {
	pageCount := flag.Int64("pages", 1024, "Number of pages to scan")
	bytesPerPage := flag.Int64("bytes", mem.PageSize, "Number of bytes to read from each page")
	devicePath := flag.String("device", "", "Path to the device or file to scan (leave empty to scan a temporary file filled with random data)")
	cached := flag.Bool("cached", false, "Whether to use cached mappings")
	verbose := flag.Bool("verbose", false, "Whether to enable verbose logging")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *pageCount < 1 {
		log.Fatal().Int64("pages", *pageCount).Msg("page count must be at least 1")
	}

	if *bytesPerPage < 1 || *bytesPerPage > mem.PageSize {
		log.Fatal().Int64("bytes", *bytesPerPage).Msg("bytes per page must be between 1 and the page size")
	}

	size := *pageCount * mem.PageSize

	path := *devicePath
	if path == "" {
		file, err := os.CreateTemp("", "")
		if err != nil {
			log.Fatal().Err(err).Msg("could not create scratch file")
		}
		defer os.RemoveAll(file.Name())

		if _, err := io.CopyN(file, rand.Reader, size); err != nil {
			log.Fatal().Err(err).Msg("could not fill scratch file")
		}

		if err := file.Close(); err != nil {
			log.Fatal().Err(err).Msg("could not close scratch file")
		}

		path = file.Name()

		log.Debug().Str("path", path).Int64("size", size).Msg("created scratch file")
	}

	mode := mem.Uncached
	if *cached {
		mode = mem.Cached
	}

	device, err := mem.OpenDevice(path, mode)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("could not open device")
	}
	defer device.Close()

	mapping, err := device.Map(size, 0)
	if err != nil {
		log.Fatal().Err(err).Int64("size", size).Msg("could not map scan range")
	}
	defer mapping.Unmap()

	bar := progressbar.NewOptions(
		int(*pageCount * *bytesPerPage),
		progressbar.OptionSetDescription("Scanning"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionFullWidth(),
		// VT-100 compatibility
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	beforeScan := time.Now()

	report, err := scan.NewScanner(mapping, *pageCount, *bytesPerPage, nil, &scan.Hooks{
		OnPage: func(page int64) error {
			bar.Add64(*bytesPerPage)

			return nil
		},
	}).Scan()
	if err != nil {
		log.Fatal().Err(err).Msg("could not scan mapping")
	}

	afterScan := time.Since(beforeScan)

	bar.Clear()

	digest := xxhash.New()
	buf := make([]byte, *bytesPerPage)
	for i := int64(0); i < *pageCount; i++ {
		if _, err := mapping.ReadAt(buf, i*mem.PageSize); err != nil {
			log.Fatal().Err(err).Int64("page", i).Msg("could not read page")
		}

		digest.Write(buf)
	}

	throughputMB := float64(*pageCount * *bytesPerPage) / (1024 * 1024) / afterScan.Seconds()

	fmt.Printf("%s\n", report.Summary())
	fmt.Printf("Scan: %v\n", afterScan)
	fmt.Printf("Scan throughput: %.2f MB/s (%.2f Mb/s)\n", throughputMB, throughputMB*8)
	fmt.Printf("Byte sum: 0x%x\n", report.Sum)
	fmt.Printf("Touched digest: %016x\n", digest.Sum64())
}
