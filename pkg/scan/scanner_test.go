package scan

import (
	"bytes"
	"errors"
	"testing"

	"github.com/lwiecaszek/pageread/pkg/mem"
)

type sliceView struct {
	data []byte
}

func (v *sliceView) ByteAt(off int64) (byte, error) {
	if off < 0 || off >= int64(len(v.data)) {
		return 0, mem.ErrOutOfRange
	}

	return v.data[off], nil
}

func (v *sliceView) Size() int64 {
	return int64(len(v.data))
}

func newCountingView(pages int64) *sliceView {
	data := make([]byte, pages*mem.PageSize)
	for i := range data {
		data[i] = byte(i)
	}

	return &sliceView{data}
}

func TestScannerSum(t *testing.T) {
	tests := []struct {
		name     string
		pages    int64
		bytes    int64
		expected uint64
	}{
		{
			name:     "Single byte of the first page",
			pages:    1,
			bytes:    1,
			expected: 0,
		},
		{
			name:     "First 256 bytes of one page",
			pages:    1,
			bytes:    256,
			expected: 32640,
		},
		{
			name:     "First 256 bytes of both pages",
			pages:    2,
			bytes:    256,
			expected: 65280,
		},
		{
			name:     "Whole first page",
			pages:    1,
			bytes:    mem.PageSize,
			expected: 522240,
		},
		{
			name:     "Both whole pages",
			pages:    2,
			bytes:    mem.PageSize,
			expected: 1044480,
		},
		{
			name:     "Byte count spilling into the next page",
			pages:    1,
			bytes:    mem.PageSize + 16,
			expected: 522360,
		},
		{
			name:     "Negative page count touches nothing",
			pages:    -1,
			bytes:    1,
			expected: 0,
		},
		{
			name:     "Negative byte count touches nothing",
			pages:    2,
			bytes:    -1,
			expected: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			view := newCountingView(2)

			report, err := NewScanner(view, tc.pages, tc.bytes, nil, nil).Scan()
			if err != nil {
				t.Fatal(err)
			}

			if report.Sum != tc.expected {
				t.Errorf("Sum: expected %v, got %v", tc.expected, report.Sum)
			}

			if report.Pages != tc.pages {
				t.Errorf("Pages: expected %v, got %v", tc.pages, report.Pages)
			}

			if report.Bytes != tc.bytes {
				t.Errorf("Bytes: expected %v, got %v", tc.bytes, report.Bytes)
			}
		})
	}
}

func TestScannerDump(t *testing.T) {
	tests := []struct {
		name     string
		pages    int64
		bytes    int64
		dump     bool
		expected string
	}{
		{
			name:     "No output without dumping",
			pages:    2,
			bytes:    mem.PageSize,
			dump:     false,
			expected: "",
		},
		{
			name:     "Single byte prints the marker only",
			pages:    1,
			bytes:    1,
			dump:     true,
			expected: "page: 0\n",
		},
		{
			name:     "Sixteen bytes stay below the first boundary",
			pages:    1,
			bytes:    16,
			dump:     true,
			expected: "page: 0\n",
		},
		{
			name:     "Seventeen bytes cross one boundary",
			pages:    1,
			bytes:    17,
			dump:     true,
			expected: "page: 0\n10 \n",
		},
		{
			name:     "Thirty-three bytes cross two boundaries",
			pages:    1,
			bytes:    33,
			dump:     true,
			expected: "page: 0\n10 \n20 \n",
		},
		{
			name:     "Each page gets its own marker",
			pages:    2,
			bytes:    17,
			dump:     true,
			expected: "page: 0\n10 \npage: 1\n10 \n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			view := newCountingView(2)
			out := &bytes.Buffer{}

			if _, err := NewScanner(view, tc.pages, tc.bytes, &Options{
				Dump: tc.dump,
				Out:  out,
			}, nil).Scan(); err != nil {
				t.Fatal(err)
			}

			if out.String() != tc.expected {
				t.Errorf("dump output: expected %q, got %q", tc.expected, out.String())
			}
		})
	}
}

func TestScannerOutOfRange(t *testing.T) {
	view := newCountingView(2)

	report, err := NewScanner(view, 2, mem.PageSize+1, nil, nil).Scan()
	if !errors.Is(err, mem.ErrOutOfRange) {
		t.Errorf("Scan error: expected %v, got %v", mem.ErrOutOfRange, err)
	}

	if report != nil {
		t.Errorf("Report: expected nil, got %v", report)
	}
}

func TestScannerOnPageHook(t *testing.T) {
	view := newCountingView(4)

	visited := []int64{}
	if _, err := NewScanner(view, 4, 1, nil, &Hooks{
		OnPage: func(page int64) error {
			visited = append(visited, page)

			return nil
		},
	}).Scan(); err != nil {
		t.Fatal(err)
	}

	if len(visited) != 4 {
		t.Fatalf("OnPage calls: expected %v, got %v", 4, len(visited))
	}

	for i, page := range visited {
		if int64(i) != page {
			t.Errorf("OnPage order: expected %v, got %v", i, page)
		}
	}

	hookErr := errors.New("hook failed")
	if _, err := NewScanner(view, 4, 1, nil, &Hooks{
		OnPage: func(page int64) error {
			if page == 2 {
				return hookErr
			}

			return nil
		},
	}).Scan(); !errors.Is(err, hookErr) {
		t.Errorf("Scan with failing hook: expected %v, got %v", hookErr, err)
	}
}

func TestReportSummary(t *testing.T) {
	report := &Report{Pages: 16, Bytes: 1, Sum: 42}

	if expected := "16 pages touched (1 bytes in each page)"; report.Summary() != expected {
		t.Errorf("Summary: expected %q, got %q", expected, report.Summary())
	}
}
