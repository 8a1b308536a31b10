package sources

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple object", `{"a":1};var next = 2;`, `{"a":1}`},
		{"nested braces", `{"a":{"b":{"c":3}}}tail`, `{"a":{"b":{"c":3}}}`},
		{"braces inside string", `{"a":"x}y{z"}rest`, `{"a":"x}y{z"}`},
		{"escaped quote in string", `{"a":"he said \"}\""}rest`, `{"a":"he said \"}\""}`},
		{"not an object", `var x = 1;`, ""},
		{"unterminated", `{"a":1`, ""},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON([]byte(tt.in))
			if string(got) != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateVisitorData(t *testing.T) {
	a := generateVisitorData()
	b := generateVisitorData()
	if len(a) != 11 {
		t.Errorf("length = %d, want 11", len(a))
	}
	if a == b {
		t.Errorf("two visitor IDs identical: %q", a)
	}
}
