package passaporteweb

import "testing"

func TestParsePageSetNextAndPrev(t *testing.T) {
	header := `<http://x/?page=2>; rel="next", <http://x/?page=1>; rel="prev"`

	set := parsePageSet(header, 20)
	want := PageSet{Limit: 20, Next: 2, Prev: 1}
	if set != want {
		t.Errorf("expected %+v, got %+v", want, set)
	}
	if !set.HasNext() || !set.HasPrev() {
		t.Error("expected next and prev pages")
	}
}

func TestParsePageSetAllRelations(t *testing.T) {
	header := `<http://x/n/?page=1&limit=5>; rel="first", ` +
		`<http://x/n/?page=7&limit=5>; rel="last", ` +
		`<http://x/n/?page=2&limit=5>; rel="prev", ` +
		`<http://x/n/?page=4&limit=5>; rel="next"`

	set := parsePageSet(header, 5)
	want := PageSet{Limit: 5, First: 1, Last: 7, Prev: 2, Next: 4}
	if set != want {
		t.Errorf("expected %+v, got %+v", want, set)
	}
}

func TestParsePageSetEmptyHeader(t *testing.T) {
	set := parsePageSet("", 20)
	want := PageSet{Limit: 20}
	if set != want {
		t.Errorf("expected %+v, got %+v", want, set)
	}
	if set.HasNext() || set.HasPrev() {
		t.Error("expected no pages from an empty header")
	}
}

func TestParsePageSetMalformedEntries(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"no angle brackets", `http://x/?page=2; rel="next"`},
		{"no rel param", `<http://x/?page=2>; type="text/html"`},
		{"non-numeric page", `<http://x/?page=two>; rel="next"`},
		{"missing page param", `<http://x/>; rel="next"`},
		{"bare garbage", `!!!`},
		{"unknown relation", `<http://x/?page=3>; rel="related"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set := parsePageSet(tc.header, 20)
			if want := (PageSet{Limit: 20}); set != want {
				t.Errorf("expected %+v, got %+v", want, set)
			}
		})
	}
}

func TestParsePageSetSkipsBadEntriesKeepsGood(t *testing.T) {
	header := `garbage, <http://x/?page=3>; rel="next"`

	set := parsePageSet(header, 10)
	if want := (PageSet{Limit: 10, Next: 3}); set != want {
		t.Errorf("expected %+v, got %+v", want, set)
	}
}
