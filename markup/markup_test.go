package markup

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ignoreRaw compares tokens by kind, text and target only.
var ignoreRaw = cmpopts.IgnoreFields(Token{}, "Raw")

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
		{
			name:  "spoiler",
			input: "<s>secret</s> ok",
			expected: []Token{
				{Kind: SpoilerOpen},
				{Kind: Text, Text: "secret"},
				{Kind: SpoilerClose},
				{Kind: Text, Text: " ok"},
			},
		},
		{
			name:  "quote with entities",
			input: `<span class="quote">&gt;be me</span><br>text &amp; more`,
			expected: []Token{
				{Kind: QuoteOpen},
				{Kind: Text, Text: ">be me"},
				{Kind: QuoteClose},
				{Kind: LineBreak},
				{Kind: Text, Text: "text & more"},
			},
		},
		{
			name:  "quotelink",
			input: `<a href="#p123456" class="quotelink">&gt;&gt;123456</a>`,
			expected: []Token{
				{Kind: QuoteLinkOpen, Target: "123456"},
				{Kind: Text, Text: ">>123456"},
				{Kind: QuoteLinkClose},
			},
		},
		{
			name:  "code spellings",
			input: `<pre class="prettyprint">a</pre><code>b</code>`,
			expected: []Token{
				{Kind: CodeOpen},
				{Kind: Text, Text: "a"},
				{Kind: CodeClose},
				{Kind: CodeOpen},
				{Kind: Text, Text: "b"},
				{Kind: CodeClose},
			},
		},
		{
			name:  "unknown tags are stripped",
			input: `<b>bold</b> <span class="deadlink">&gt;&gt;1</span> <wbr>x`,
			expected: []Token{
				{Kind: Text, Text: "bold >>1"},
				{Kind: QuoteClose},
				{Kind: Text, Text: " x"},
			},
		},
		{
			name:  "foreign anchor is text after stripping",
			input: `<a href="https://example.com">site</a>`,
			expected: []Token{
				{Kind: Text, Text: "site"},
				{Kind: QuoteLinkClose},
			},
		},
		{
			name:  "stray angle brackets",
			input: "a < b\nc",
			expected: []Token{
				{Kind: Text, Text: "a < b"},
				{Kind: LineBreak},
				{Kind: Text, Text: "c"},
			},
		},
		{
			name:  "numeric and named entities",
			input: "it&#039;s &quot;1&#44;000&quot;&nbsp;ok",
			expected: []Token{
				{Kind: Text, Text: `it's "1,000" ok`},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.input)
			if diff := cmp.Diff(tc.expected, got, ignoreRaw); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestJoinRoundTrips(t *testing.T) {
	inputs := []string{
		"<s>secret</s> ok",
		`<span class="quote">&gt;be me</span><br><b>x</b>`,
		`<a href="#p1" class="quotelink">&gt;&gt;1</a> <a href="#px" class="quotelink">bad</a>`,
		"<code>int x;\nreturn</code>",
		"< <s < </s",
		"plain",
	}
	for _, in := range inputs {
		toks := Tokenize(in)
		if got, expected := Join(toks), Clean(in); got != expected {
			t.Errorf("Expected: %q Actual: %q", expected, got)
		}
	}
}

func TestUnknownTagsNeverSurvive(t *testing.T) {
	in := `<div><i>x</i><img src="a.png"><span class="sjis">y</span></div><b<i>>z`
	for _, tok := range Tokenize(in) {
		for _, tag := range []string{"<div", "<i>", "<img", "sjis", "</div>", "<b"} {
			if strings.Contains(tok.Text, tag) || strings.Contains(tok.Raw, tag) {
				t.Errorf("tag %q leaked into token %+v", tag, tok)
			}
		}
	}
}

func TestNestedUnknownTags(t *testing.T) {
	tt := []struct {
		input    string
		expected string
	}{
		{"<b<i>>bold", "bold"},
		{"<<i>script>x", "x"},
		{"<d<i<b>>v>text", "text"},
		{"keep <s>this</s>", "keep <s>this</s>"},
	}
	for _, tc := range tt {
		t.Run(tc.input, func(t *testing.T) {
			if got := StripUnknownTags(tc.input); got != tc.expected {
				t.Errorf("Expected: %q Actual: %q", tc.expected, got)
			}
			for _, tok := range Tokenize(tc.input) {
				if tok.Kind == Text && strings.ContainsAny(tok.Text, "<>") {
					t.Errorf("tag leaked into token %+v", tok)
				}
			}
		})
	}
}

func TestMalformedQuoteLink(t *testing.T) {
	// Not a quotelink: stripped by the whitelist pass like any other tag.
	toks := Tokenize(`<a href="#pabc" class="quotelink">x</a>`)
	expected := []Token{
		{Kind: Text, Text: "x"},
		{Kind: QuoteLinkClose},
	}
	if diff := cmp.Diff(expected, toks, ignoreRaw); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
