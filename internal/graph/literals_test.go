package graph

import "testing"

func TestQuoteWideInts(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "epoch millis",
			query: `mutation { addExpense(date: 1707939000000, cost: 5) { id } }`,
			want:  `mutation { addExpense(date: "1707939000000", cost: 5) { id } }`,
		},
		{
			name:  "negative wide int",
			query: `{ f(d: -1707939000000) }`,
			want:  `{ f(d: "-1707939000000") }`,
		},
		{
			name:  "int32 bounds kept",
			query: `{ f(a: 2147483647, b: -2147483648, c: 0) }`,
			want:  `{ f(a: 2147483647, b: -2147483648, c: 0) }`,
		},
		{
			name:  "just past int32",
			query: `{ f(a: 2147483648) }`,
			want:  `{ f(a: "2147483648") }`,
		},
		{
			name:  "floats untouched",
			query: `{ f(a: 1707939000000.5, b: 17e12, c: 1.5E-3) }`,
			want:  `{ f(a: 1707939000000.5, b: 17e12, c: 1.5E-3) }`,
		},
		{
			name:  "strings untouched",
			query: `{ f(s: "1707939000000", t: "say \"1707939000000\"") }`,
			want:  `{ f(s: "1707939000000", t: "say \"1707939000000\"") }`,
		},
		{
			name:  "block strings untouched",
			query: `{ f(s: """9999999999 \""" 9999999999""") }`,
			want:  `{ f(s: """9999999999 \""" 9999999999""") }`,
		},
		{
			name:  "comments untouched",
			query: "{ # paid 9999999999\n f(a: 1) }",
			want:  "{ # paid 9999999999\n f(a: 1) }",
		},
		{
			name:  "digits inside names untouched",
			query: `{ group9999999999: group(id: "1") { id } }`,
			want:  `{ group9999999999: group(id: "1") { id } }`,
		},
		{
			name:  "variable default",
			query: `query($d: Date = 1707939000000) { f(d: $d) }`,
			want:  `query($d: Date = "1707939000000") { f(d: $d) }`,
		},
		{
			name:  "empty",
			query: ``,
			want:  ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quoteWideInts(tt.query); got != tt.want {
				t.Errorf("quoteWideInts(%q)\n got %q\nwant %q", tt.query, got, tt.want)
			}
		})
	}
}
