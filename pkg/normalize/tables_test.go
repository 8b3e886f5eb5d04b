package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBalanceTables(t *testing.T) {
	t.Run("unmatched open table gets exactly one closer appended", func(t *testing.T) {
		got := balanceTables("{|\n|cell")
		assert.Equal(t, "{|\n|cell\n|}", got)
		assert.Equal(t, 1, strings.Count(got, "|}"))
	})

	t.Run("malformed {|} line is dropped entirely", func(t *testing.T) {
		got := balanceTables("before\n{|} junk\nafter")
		assert.Equal(t, "before\nafter", got)
	})

	t.Run("closer without an open table is dropped", func(t *testing.T) {
		got := balanceTables("|}\ntext")
		assert.Equal(t, "text", got)
	})

	t.Run("table start line is reduced to a bare marker", func(t *testing.T) {
		got := balanceTables("{| class=\"wikitable\"\n|cell\n|}")
		assert.Equal(t, "{|\n|cell\n|}", got)
	})

	t.Run("nested opens each get a closer", func(t *testing.T) {
		got := balanceTables("{|\n{|\n|cell")
		assert.Equal(t, "{|\n{|\n|cell\n|}\n|}", got)
	})

	t.Run("balanced input passes through", func(t *testing.T) {
		in := "{|\n|a\n|}"
		assert.Equal(t, in, balanceTables(in))
	})
}

func TestCleanTableStart(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "keeps class attribute only",
			in:   "{| class=\"wikitable\" border=\"1\" style=\"width:100%\"\n",
			want: "{| class=\"wikitable\"\n",
		},
		{
			name: "no attributes",
			in:   "{| cellspacing=\"0\" cellpadding=\"2\"\n",
			want: "{|\n",
		},
		{
			name: "bare start",
			in:   "{|\n",
			want: "{|\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanTableStart(tt.in))
		})
	}
}

func TestUnwrapBraces(t *testing.T) {
	assert.Equal(t, "param", unwrapBraces("{{{param}}}"))
	assert.Equal(t, "Template text", unwrapBraces("{{Template text}}"))
	assert.Equal(t, "note", unwrapBraces("{note}"))
	// Table markers survive: the single-brace pattern excludes "|".
	assert.Equal(t, "{|\n|}", unwrapBraces("{|\n|}"))
}

func TestStripStrayPipes(t *testing.T) {
	t.Run("outside tables", func(t *testing.T) {
		got := stripStrayPipes("| leading\ntrailing |\nplain")
		assert.Equal(t, "leading\ntrailing\nplain", got)
	})

	t.Run("table interior untouched", func(t *testing.T) {
		in := "{|\n|cell\n|}"
		assert.Equal(t, in, stripStrayPipes(in))
	})
}

func TestTablesToMarkdown(t *testing.T) {
	in := "{|\n|Name\n|Age\n|-\n|Bob\n|42\n|}"
	want := "| Name | Age |\n|---|---|\n| Bob | 42 |"
	assert.Equal(t, want, tablesToMarkdown(in))
}

func TestTablesToMarkdownSkipsEmptyLeadingRow(t *testing.T) {
	// When nothing precedes the first row separator there is no header row
	// and therefore no separator line.
	in := "{|\n|-\n|a\n|b\n|-\n|c\n|d\n|}"
	want := "| a | b |\n| c | d |"
	assert.Equal(t, want, tablesToMarkdown(in))
}

func TestLegacyURLFix(t *testing.T) {
	assert.Equal(t,
		"[http://x.test/?a=%20&b=1]",
		legacyURLFix("[http://x.test/?a=&b=1]"))
	assert.Equal(t,
		"see [http://x.test/page.%20&f] end",
		legacyURLFix("see [http://x.test/page.&f] end"))
	// Unbracketed URLs are left alone.
	assert.Equal(t, "http://x.test/?a=&b", legacyURLFix("http://x.test/?a=&b"))
}
