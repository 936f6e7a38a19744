package judge0

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Encode returns the standard base64 form of s. The empty string encodes to "".
func Encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// Decode reverses Encode. Judge0 wraps encoded fields at 60 columns, so
// whitespace anywhere in the input is ignored, as is missing padding.
// An empty field decodes to "".
func Decode(s string) (string, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "", nil
	}

	data, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return "", fmt.Errorf("decoding base64: %w", err)
	}
	return string(data), nil
}

func (w wireResult) decode() (*Result, error) {
	r := &Result{
		Token:  w.Token,
		Status: w.Status,
		Time:   w.Time,
		Memory: w.Memory,
	}

	fields := []struct {
		name string
		src  string
		dst  *string
	}{
		{"stdout", w.Stdout, &r.Stdout},
		{"stderr", w.Stderr, &r.Stderr},
		{"compile_output", w.CompileOutput, &r.CompileOutput},
		{"message", w.Message, &r.Message},
	}
	for _, f := range fields {
		text, err := Decode(f.src)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.name, err)
		}
		*f.dst = text
	}
	return r, nil
}
