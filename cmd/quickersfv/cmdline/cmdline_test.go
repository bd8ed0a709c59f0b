package cmdline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexEmptyAndWhitespaceOnlyInput(t *testing.T) {
	args, err := Lex("")
	require.NoError(t, err)
	assert.Empty(t, args)

	args, err = Lex("    \t  ")
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestLexSpaceAndTabDelimitedArgs(t *testing.T) {
	args, err := Lex("one two\tthree")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, args)
}

func TestLexQuotedArgWithEmbeddedWhitespace(t *testing.T) {
	args, err := Lex(`"one two" three`)
	require.NoError(t, err)
	assert.Equal(t, []string{"one two", "three"}, args)
}

func TestLexUnterminatedQuotePreservesContentVerbatimThenTrimsTrailingWhitespace(t *testing.T) {
	args, err := Lex(`"arg1 still_arg1 no terminating quote     `)
	require.NoError(t, err)
	assert.Equal(t, []string{"arg1 still_arg1 no terminating quote"}, args)
}

func TestLexDoubledQuoteInsideQuotesIsLiteralQuote(t *testing.T) {
	args, err := Lex(`"say ""hi"" now"`)
	require.NoError(t, err)
	assert.Equal(t, []string{`say "hi" now`}, args)
}

func TestLexBackslashEscapedQuoteInsideQuotes(t *testing.T) {
	args, err := Lex(`"a \" b" c`)
	require.NoError(t, err)
	assert.Equal(t, []string{`a " b`, "c"}, args)
}

func TestLexLiteralBackslashOutsideEscapeContext(t *testing.T) {
	args, err := Lex(`C:\path\to\file`)
	require.NoError(t, err)
	assert.Equal(t, []string{`C:\path\to\file`}, args)
}

func TestLexCaretIsNotSpecial(t *testing.T) {
	args, err := Lex(`a^b c`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a^b", "c"}, args)
}

func TestLexBackslashRunParityBeforeQuote(t *testing.T) {
	// Two backslashes collapse to one literal backslash; the quote
	// mark that follows still acts as a string delimiter.
	args, err := Lex(`"a\\b"`)
	require.NoError(t, err)
	assert.Equal(t, []string{`a\b`}, args)

	// Three backslashes: one pair collapses to a literal backslash,
	// the leftover single backslash escapes the quote into a literal
	// character so the string does not end here.
	args, err = Lex(`"a\\\" b"`)
	require.NoError(t, err)
	assert.Equal(t, []string{`a\" b`}, args)

	// Four backslashes before a quote: two literal backslashes, quote
	// still closes the string.
	args, err = Lex(`"a\\\\" b`)
	require.NoError(t, err)
	assert.Equal(t, []string{`a\\`, "b"}, args)
}

func TestLexRejectsInvalidUTF8(t *testing.T) {
	_, err := Lex("valid \xff\xfe invalid")
	assert.Error(t, err)
}

func TestParseStripsDoall(t *testing.T) {
	opts, err := Parse("DOALL file1.sfv")
	require.NoError(t, err)
	assert.Equal(t, []string{"file1.sfv"}, opts.FilesToCheck)
	assert.Empty(t, opts.OutFile)
}

func TestParseCapturesOutputPrefix(t *testing.T) {
	opts, err := Parse(`file1.sfv OUTPUT:C:\results.txt`)
	require.NoError(t, err)
	assert.Equal(t, []string{"file1.sfv"}, opts.FilesToCheck)
	assert.Equal(t, `C:\results.txt`, opts.OutFile)
}

func TestParseTruncatesToSingleFileWhenOutputSet(t *testing.T) {
	opts, err := Parse(`a.sfv b.sfv OUTPUT:out.txt`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.sfv"}, opts.FilesToCheck)
	assert.Equal(t, "out.txt", opts.OutFile)
}

func TestParseKeepsAllFilesWhenNoOutputSet(t *testing.T) {
	opts, err := Parse("a.sfv b.sfv")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.sfv", "b.sfv"}, opts.FilesToCheck)
}
