package uno

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	g := newTestGenerator(t, nil)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "jsx class attribute",
			text: `<div className="flex items-center m-4">`,
			want: []string{"flex", "items-center", "m-4"},
		},
		{
			name: "non-matching words are ignored",
			text: `export const App = () => <span class="bogus flex unknown-thing" />`,
			want: []string{"flex"},
		},
		{
			name: "template literal",
			text: "const cls = `hidden ${cond ? \"sm:flex\" : \"block\"}`",
			want: []string{"hidden", "sm:flex", "block"},
		},
		{
			name: "duplicates collapse in first-seen order",
			text: `"m-4 flex m-4 flex"`,
			want: []string{"m-4", "flex"},
		},
		{
			name: "arbitrary value",
			text: `class="m-[10px]"`,
			want: []string{"m-[10px]"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, g.Scan(tt.text))
		})
	}
}

func TestScanSingleCharacterRule(t *testing.T) {
	g := newTestGenerator(t, &Config{Rules: map[string]string{
		"p": "padding: 1rem",
	}})

	got := g.Scan(`<div class="p flex">`)
	require.Equal(t, []string{"p", "flex"}, got)
}

func TestScanIdempotent(t *testing.T) {
	g := newTestGenerator(t, nil)
	text := `<div class="flex hover:bg-red m-4">`

	first := g.Scan(text)
	second := g.Scan(text)
	require.Equal(t, first, second)
}
