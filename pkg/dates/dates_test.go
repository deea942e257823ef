package dates

import "testing"

func TestParseListDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12 Feb 1955", "1955-02-12"},
		{"2 Jan 2006", "2006-01-02"},
		{"circa 1958", "circa 1958"},
		{"", ""},
	}
	for _, c := range cases {
		if got := ParseListDate(c.in); got != c.want {
			t.Fatalf("ParseListDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseAmericanDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"5/9/2019", "2019-05-09"},
		{"11/24/14", "2014-11-24"},
		{"1/2/06", "2006-01-02"},
		{"not a date", "not a date"},
		{"", ""},
	}
	for _, c := range cases {
		if got := ParseAmericanDate(c.in); got != c.want {
			t.Fatalf("ParseAmericanDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCollapsePeriod(t *testing.T) {
	cases := []struct {
		name   string
		points [4]Point
		want   string
		ok     bool
	}{
		{
			name: "single date",
			points: [4]Point{
				{1968, 4, 7}, {1968, 4, 7}, {1968, 4, 7}, {1968, 4, 7},
			},
			want: "1968-04-07",
			ok:   true,
		},
		{
			name: "clean full year",
			points: [4]Point{
				{1959, 1, 1}, {1959, 1, 1}, {1959, 12, 31}, {1959, 12, 31},
			},
			want: "1959",
			ok:   true,
		},
		{
			name: "full year span across years dropped",
			points: [4]Point{
				{1959, 1, 1}, {1959, 1, 1}, {1960, 12, 31}, {1960, 12, 31},
			},
		},
		{
			name: "fuzzy start dropped",
			points: [4]Point{
				{1959, 1, 1}, {1959, 6, 30}, {1959, 12, 31}, {1959, 12, 31},
			},
		},
		{
			name: "arbitrary range dropped",
			points: [4]Point{
				{1959, 3, 1}, {1959, 3, 1}, {1959, 11, 30}, {1959, 11, 30},
			},
		},
	}
	for _, c := range cases {
		got, ok := CollapsePeriod(c.points[0], c.points[1], c.points[2], c.points[3])
		if ok != c.ok || got != c.want {
			t.Fatalf("%s: CollapsePeriod = (%q, %v), want (%q, %v)", c.name, got, ok, c.want, c.ok)
		}
	}
}
