package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "cat.png", want: "cat.png"},
		{in: "  spaced.jpg  ", want: "spaced.jpg"},
		{in: "a/b.png", want: "a_b.png"},
		{in: `a\b.png`, want: "a_b.png"},
		{in: "../../etc/passwd", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("SanitizeFileName(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("SanitizeFileName(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtension(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "cat.png", want: "png"},
		{in: "cat.PNG", want: "png"},
		{in: "archive.tar.gz", want: "gz"},
		{in: "noext", want: ""},
		{in: "trailingdot.", want: ""},
		{in: ".hidden", want: "hidden"},
	}
	for _, tc := range cases {
		if got := Extension(tc.in); got != tc.want {
			t.Errorf("Extension(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
