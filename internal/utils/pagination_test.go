package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		{"", 10, 10},
		{"42", 0, 42},
		{"-13", 1, -13},
		{"x", 5, 5},
		{" 42", 7, 7},
		{"999999999999999999999999", -1, -1},
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestParsePage(t *testing.T) {
	cases := []struct {
		page, size         string
		wantPage, wantSize int
	}{
		{"", "", 1, 20},
		{"3", "10", 3, 10},
		{"0", "0", 1, 1},
		{"-2", "500", 1, 100},
		{"abc", "xyz", 1, 20},
	}
	for _, tc := range cases {
		p, s := ParsePage(tc.page, tc.size)
		if p != tc.wantPage || s != tc.wantSize {
			t.Errorf("ParsePage(%q,%q) = %d,%d; want %d,%d", tc.page, tc.size, p, s, tc.wantPage, tc.wantSize)
		}
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(1, 20); got != 0 {
		t.Fatalf("Offset(1,20)=%d", got)
	}
	if got := Offset(3, 10); got != 20 {
		t.Fatalf("Offset(3,10)=%d", got)
	}
	if got := Offset(0, 10); got != 0 {
		t.Fatalf("Offset(0,10)=%d", got)
	}
}
