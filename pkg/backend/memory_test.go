package backend

import (
	"bytes"
	"testing"
)

func TestMemoryBackend(t *testing.T) {
	tests := []struct {
		name         string
		size         int64
		writes       map[int64][]byte
		readOff      int64
		expectedData []byte
	}{
		{
			name:         "Reads back a written page",
			size:         16,
			writes:       map[int64][]byte{4: []byte("1234")},
			readOff:      4,
			expectedData: []byte("1234"),
		},
		{
			name:         "Unwritten pages read back zero filled",
			size:         16,
			writes:       nil,
			readOff:      8,
			expectedData: []byte{0, 0, 0, 0},
		},
		{
			name:         "Short stored page is zero padded",
			size:         16,
			writes:       map[int64][]byte{0: []byte("12")},
			readOff:      0,
			expectedData: []byte{'1', '2', 0, 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewMemoryBackend(tc.size, false)

			for off, page := range tc.writes {
				if _, err := b.WriteAt(page, off); err != nil {
					t.Fatal(err)
				}
			}

			buf := make([]byte, len(tc.expectedData))
			n, err := b.ReadAt(buf, tc.readOff)
			if err != nil {
				t.Fatal(err)
			}

			if n != len(buf) {
				t.Errorf("ReadAt bytes read: expected %v, got %v", len(buf), n)
			}

			if !bytes.Equal(buf, tc.expectedData) {
				t.Errorf("ReadAt data: expected %v, got %v", tc.expectedData, buf)
			}

			size, err := b.Size()
			if err != nil {
				t.Fatal(err)
			}

			if size != tc.size {
				t.Errorf("Size: expected %v, got %v", tc.size, size)
			}

			if err := b.Sync(); err != nil {
				t.Errorf("Sync: expected nil, got %v", err)
			}
		})
	}
}

func TestMemoryBackendCopiesOnWrite(t *testing.T) {
	b := NewMemoryBackend(8, false)

	page := []byte("1234")
	if _, err := b.WriteAt(page, 0); err != nil {
		t.Fatal(err)
	}

	page[0] = 'X'

	buf := make([]byte, 4)
	if _, err := b.ReadAt(buf, 0); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(buf, []byte("1234")) {
		t.Errorf("ReadAt data: expected %v, got %v", []byte("1234"), buf)
	}
}
