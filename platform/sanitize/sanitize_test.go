package sanitize

import "testing"

func TestText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "We need a demo for 500 seats", "We need a demo for 500 seats"},
		{"tags stripped", "<b>urgent</b> demo request", "urgent demo request"},
		{"script stripped", `<script>alert(1)</script>hello`, "alert(1)hello"},
		{"encoded tags stripped after decode", "&lt;img src=x&gt;hi", "hi"},
		{"whitespace trimmed", "  hello  ", "hello"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Text(tc.in); got != tc.want {
				t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
