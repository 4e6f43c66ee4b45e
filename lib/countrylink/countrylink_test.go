package countrylink

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLinkNames(t *testing.T) {
	testCases := []struct {
		scraped   []string
		canonical []string
		// if Link.Confidence == 0
		// the test will not assert the confidence to be equal
		expected []Link
	}{
		{
			scraped:   []string{"France", "Italy", "Spain"},
			canonical: []string{"Italy", "France"},
			expected: []Link{
				{Left: "France", Right: "France", Confidence: 1},
				{Left: "Italy", Right: "Italy", Confidence: 1},
			},
		},
		{
			// normalization makes case and punctuation differences exact
			scraped:   []string{"s. korea", "Guinea-Bissau"},
			canonical: []string{"S Korea", "Guinea Bissau"},
			expected: []Link{
				{Left: "s. korea", Right: "S Korea", Confidence: 1},
				{Left: "Guinea-Bissau", Right: "Guinea Bissau", Confidence: 1},
			},
		},
		{
			// fuzzy pairing kicks in only after exact matches are taken
			scraped:   []string{"Czechia", "Viet Nam"},
			canonical: []string{"Czech Republic", "Vietnam", "Czechia"},
			expected: []Link{
				{Left: "Czechia", Right: "Czechia", Confidence: 1},
				{Left: "Viet Nam", Right: "Vietnam"},
			},
		},
		{
			scraped:   []string{"France"},
			canonical: []string{},
			expected:  nil,
		},
		{
			scraped:   []string{},
			canonical: []string{},
			expected:  nil,
		},
	}

	for _, test := range testCases {
		links := LinkNames(test.scraped, test.canonical)
		diff := cmp.Diff(
			test.expected,
			links,
			cmpopts.SortSlices(func(a, b Link) bool {
				return a.Left < b.Left
			}),
			cmpopts.IgnoreFields(Link{}, "Confidence"),
		)
		if diff != "" {
			t.Fatal(diff)
		}
	}
}

func TestLinkNamesDeterministic(t *testing.T) {
	scraped := []string{"USA", "UK", "UAE", "Ukraine"}
	canonical := []string{"United Kingdom", "United States", "United Arab Emirates", "Ukraine"}

	first := LinkNames(scraped, canonical)
	for i := 0; i < 10; i++ {
		diff := cmp.Diff(first, LinkNames(scraped, canonical))
		if diff != "" {
			t.Fatal(diff)
		}
	}
}
