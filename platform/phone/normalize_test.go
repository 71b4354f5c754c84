package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(415) 555-2671", "+14155552671"},
		{"+31 20 794 0800", "+31207940800"},
		{"  +14155552671  ", "+14155552671"},
		{"not a phone", "not a phone"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeE164(tc.in); got != tc.want {
			t.Fatalf("NormalizeE164(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
