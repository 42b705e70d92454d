package backend

import "testing"

func TestPageKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		off      int64
		expected string
	}{
		{
			name:     "Bare key",
			prefix:   "",
			off:      4096,
			expected: "0000000000001000",
		},
		{
			name:     "Prefixed key",
			prefix:   "snapshot",
			off:      0,
			expected: "snapshot-0000000000000000",
		},
		{
			name:     "Large offset",
			prefix:   "",
			off:      1 << 40,
			expected: "0000010000000000",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pageKey(tc.prefix, tc.off); got != tc.expected {
				t.Errorf("pageKey: expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestZeroFill(t *testing.T) {
	p := []byte{1, 2, 3, 4}
	zeroFill(p[1:])

	for i, c := range p {
		expected := byte(0)
		if i == 0 {
			expected = 1
		}

		if c != expected {
			t.Errorf("byte %d: expected %v, got %v", i, expected, c)
		}
	}
}
