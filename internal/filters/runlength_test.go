package filters

import (
	"bytes"
	"testing"
)

// TestRunLengthDecodeLiteral tests literal runs
func TestRunLengthDecodeLiteral(t *testing.T) {
	// Length byte 2 means copy the next 3 bytes literally
	data := []byte{2, 'a', 'b', 'c', 128}

	decoded, err := RunLengthDecode(data)
	if err != nil {
		t.Fatalf("RunLengthDecode failed: %v", err)
	}

	if !bytes.Equal(decoded, []byte("abc")) {
		t.Errorf("decoded = %q, want %q", decoded, "abc")
	}
}

// TestRunLengthDecodeReplicated tests replicated runs
func TestRunLengthDecodeReplicated(t *testing.T) {
	// Length byte 254 means repeat the next byte 257-254=3 times
	data := []byte{254, 'x', 128}

	decoded, err := RunLengthDecode(data)
	if err != nil {
		t.Fatalf("RunLengthDecode failed: %v", err)
	}

	if !bytes.Equal(decoded, []byte("xxx")) {
		t.Errorf("decoded = %q, want %q", decoded, "xxx")
	}
}

// TestRunLengthDecodeMixed tests a mix of literal and replicated runs
func TestRunLengthDecodeMixed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []byte
	}{
		{
			name: "literal then replicated",
			data: []byte{1, 'h', 'i', 255, '!', 128},
			want: []byte("hi!!"),
		},
		{
			name: "no EOD marker",
			data: []byte{0, 'z'},
			want: []byte("z"),
		},
		{
			name: "empty input",
			data: []byte{},
			want: []byte{},
		},
		{
			name: "EOD only",
			data: []byte{128},
			want: []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := RunLengthDecode(tt.data)
			if err != nil {
				t.Fatalf("RunLengthDecode failed: %v", err)
			}

			if !bytes.Equal(decoded, tt.want) {
				t.Errorf("decoded = %q, want %q", decoded, tt.want)
			}
		})
	}
}

// TestRunLengthDecodeTruncated tests error handling for truncated input
func TestRunLengthDecodeTruncated(t *testing.T) {
	// Length byte 5 promises 6 literal bytes but only 2 follow
	if _, err := RunLengthDecode([]byte{5, 'a', 'b'}); err == nil {
		t.Error("expected error for truncated literal run")
	}

	// Replicated run with no byte to replicate
	if _, err := RunLengthDecode([]byte{200}); err == nil {
		t.Error("expected error for truncated replicated run")
	}
}
