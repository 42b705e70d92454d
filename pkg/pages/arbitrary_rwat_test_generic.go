package pages

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"testing"
)

type ReadWriteConfiguration struct {
	PageSizes   []int64
	PageCount   int64
	BufferSizes []int64
}

func TestArbitraryReadWriterAtGeneric(
	t *testing.T,
	getArbitraryReadWriterAt func(pageSize, pageCount int64) (ReadWriterAt, func() error, error),
	configurations []ReadWriteConfiguration,
) {
	for _, cfg := range configurations {
		for _, pageSize := range cfg.PageSizes {
			for _, bufferSize := range cfg.BufferSizes {
				for offset := int64(0); offset+bufferSize <= cfg.PageCount*pageSize; offset += bufferSize {
					t.Run(fmt.Sprintf("read_uninitialized_pageSize_%d_pageCount_%d_bufferSize_%d_offset_%d", pageSize, cfg.PageCount, bufferSize, offset), func(t *testing.T) {
						arw, free, err := getArbitraryReadWriterAt(pageSize, cfg.PageCount)
						if err != nil {
							t.Fatal(err)
						}
						defer free()

						expectedData := make([]byte, bufferSize)

						buf := make([]byte, bufferSize)
						n, err := arw.ReadAt(buf, offset)
						if err != nil {
							t.Fatal(err)
						}

						if n != len(buf) {
							t.Errorf("read %d bytes, expected %d", n, len(buf))
						}

						if !bytes.Equal(buf, expectedData) {
							t.Errorf("got %v, want %v", buf, expectedData)
						}
					})

					t.Run(fmt.Sprintf("read_write_pageSize_%d_pageCount_%d_bufferSize_%d_offset_%d", pageSize, cfg.PageCount, bufferSize, offset), func(t *testing.T) {
						arw, free, err := getArbitraryReadWriterAt(pageSize, cfg.PageCount)
						if err != nil {
							t.Fatal(err)
						}
						defer free()

						expectedData := make([]byte, bufferSize)
						_, err = rand.Read(expectedData)
						if err != nil {
							t.Fatal(err)
						}

						n, err := arw.WriteAt(expectedData, offset)
						if err != nil {
							t.Fatal(err)
						}

						if n != len(expectedData) {
							t.Errorf("wrote %d bytes, expected %d", n, len(expectedData))
						}

						buf := make([]byte, bufferSize)

						n, err = arw.ReadAt(buf, offset)
						if err != nil {
							t.Fatal(err)
						}

						if n != len(buf) {
							t.Errorf("read %d bytes, expected %d", n, len(buf))
						}

						if !bytes.Equal(buf, expectedData) {
							t.Errorf("got %v, want %v", buf, expectedData)
						}
					})
				}
			}
		}
	}
}
