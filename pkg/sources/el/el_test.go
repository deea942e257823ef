package el

import (
	"reflect"
	"testing"
)

func TestEffectiveDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"5/9/2019; 6/24/2019", "5/9/2019"},
		{"8/1/2018, effective immediately", "8/1/2018"},
		{"3/4/2020: see notice", "3/4/2020"},
		{"5/9/2019", "5/9/2019"},
	}
	for _, c := range cases {
		if got := effectiveDate(c.in); got != c.want {
			t.Fatalf("effectiveDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSplitAltNames(t *testing.T) {
	got := splitAltNames("Acme Trading; and Acme Intl")
	if !reflect.DeepEqual(got, []string{"Acme Trading", "Acme Intl"}) {
		t.Fatalf("alt names = %v", got)
	}
	if splitAltNames("") != nil {
		t.Fatal("empty input must yield nil")
	}
}
