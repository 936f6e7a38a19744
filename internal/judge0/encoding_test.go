package judge0

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"ab",
		"abc",
		"print('hi')",
		"line one\nline two\r\n\ttabbed",
		"héllo wörld ✓ 日本語",
		string([]byte{0xff, 0x00, 0xfe}),
		"#include <stdio.h>\nint main(){printf(\"%d\\n\", 42);}",
	}

	for _, in := range inputs {
		out, err := Decode(Encode(in))
		if err != nil {
			t.Errorf("Decode(Encode(%q)): %v", in, err)
			continue
		}
		if out != in {
			t.Errorf("round trip of %q = %q", in, out)
		}
	}
}

func TestDecodeWrappedLines(t *testing.T) {
	// Judge0 wraps base64 output at 60 columns.
	want := "0123456789012345678901234567890123456789012345678901234567890123456789\n"
	enc := Encode(want)
	wrapped := enc[:60] + "\n" + enc[60:] + "\n"

	got, err := Decode(wrapped)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDecodeMissingPadding(t *testing.T) {
	got, err := Decode("aGk")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "hi" {
		t.Errorf("got %q, want hi", got)
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode("%%%%"); err == nil {
		t.Error("expected error for invalid base64")
	}
}
