package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "abc123.png", want: "abc123.png"},
		{name: "simple prefix", prefix: "uploads", key: "abc123.png", want: "uploads/abc123.png"},
		{name: "leading key slash", prefix: "uploads", key: "/abc123.png", want: "uploads/abc123.png"},
		{name: "nested prefix", prefix: "env/prod", key: "abc123.png", want: "env/prod/abc123.png"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestNormalizePrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  /uploads/  ", "uploads"},
		{"uploads/", "uploads"},
		{"/env/prod/", "env/prod"},
	}

	for _, tt := range tests {
		if got := normalizePrefix(tt.in); got != tt.want {
			t.Fatalf("normalizePrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
