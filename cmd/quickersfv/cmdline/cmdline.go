// Package cmdline implements QuickerSFV's legacy Windows-compatible
// argument grammar: a single command-line string lexed with Win32
// quoting/escaping rules, then interpreted for the DOALL and
// OUTPUT:<path> tokens the original GUI's no-window invocation
// understood. It is kept separate from the modern urfave/cli surface
// so both grammars stay independently testable.
package cmdline

import (
	"strings"

	"github.com/standardbeagle/quickersfv/internal/errors"
	"github.com/standardbeagle/quickersfv/internal/utfcodec"
)

// Lex splits a single command-line string into arguments, mirroring
// Win32's argument quoting/escaping rules:
//   - arguments are delimited by spaces or tabs, outside quotes;
//   - a double-quoted run may contain whitespace; a doubled quote
//     mark ("") inside quotes is a literal quote;
//   - two consecutive backslashes become one literal backslash wherever
//     they appear, so a backslash run before a quote mark collapses
//     pairwise, and a leftover single backslash escapes the quote mark
//     into a literal character instead of a string delimiter;
//   - a single backslash not immediately before a quote is literal.
//
// Input that is not valid UTF-8 is rejected with a ParserError.
func Lex(s string) ([]string, error) {
	if !utfcodec.CheckValidUTF8([]byte(s)) {
		return nil, errors.New(errors.ParserError, "cmdline.lex", errInvalidUTF8)
	}

	var args []string
	var cur strings.Builder

	const (
		startOfArg = iota
		inArg
		inQuotes
	)
	status := startOfArg

	endOfArg := func() error {
		if !utfcodec.CheckValidUTF8([]byte(cur.String())) {
			return errors.New(errors.ParserError, "cmdline.lex", errInvalidUTF8)
		}
		args = append(args, cur.String())
		cur.Reset()
		return nil
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if c == '\\' && i+1 < len(runes) {
			if runes[i+1] == '\\' {
				cur.WriteRune('\\')
				i++
				continue
			}
			if runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
				continue
			}
		}

		switch status {
		case startOfArg:
			switch c {
			case ' ', '\t':
				// skip whitespace
			case '"':
				status = inQuotes
			default:
				status = inArg
				cur.WriteRune(c)
			}
		case inArg:
			switch c {
			case '"':
				status = inQuotes
			case ' ', '\t':
				if err := endOfArg(); err != nil {
					return nil, err
				}
				status = startOfArg
			default:
				cur.WriteRune(c)
			}
		case inQuotes:
			if c == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					cur.WriteRune('"')
					i++
				} else {
					if err := endOfArg(); err != nil {
						return nil, err
					}
					status = startOfArg
				}
			} else {
				cur.WriteRune(c)
			}
		}
	}

	// Whatever remains in the buffer (an arg with no trailing
	// delimiter, or an unterminated quoted run) has its trailing
	// whitespace trimmed and is emitted as the final argument, the
	// same cleanup the original applies regardless of which state
	// the lexer ended in.
	trimmed := strings.TrimRight(cur.String(), " \t")
	if trimmed != "" {
		if !utfcodec.CheckValidUTF8([]byte(trimmed)) {
			return nil, errors.New(errors.ParserError, "cmdline.lex", errInvalidUTF8)
		}
		args = append(args, trimmed)
	}

	return args, nil
}

var errInvalidUTF8 = errInvalidUTF8Type{}

type errInvalidUTF8Type struct{}

func (errInvalidUTF8Type) Error() string { return "argument is not valid UTF-8" }

// Options is the parsed form of QuickerSFV's legacy command line.
type Options struct {
	// FilesToCheck lists the checksum files to verify.
	FilesToCheck []string
	// OutFile, if set, redirects verification output to a file
	// instead of opening the GUI; when set, only the first entry of
	// FilesToCheck is honored (matching the original's no-GUI mode).
	OutFile string
}

// Parse lexes and interprets str per QuickerSFV's legacy grammar:
// DOALL is accepted and ignored (verification always covers every
// entry), and OUTPUT:<path> selects headless output redirection.
// Every other argument is a file to check.
func Parse(str string) (Options, error) {
	args, err := Lex(str)
	if err != nil {
		return Options{}, err
	}

	var opts Options
	for _, a := range args {
		switch {
		case a == "DOALL":
			continue
		case strings.HasPrefix(a, "OUTPUT:"):
			opts.OutFile = a[len("OUTPUT:"):]
			continue
		default:
			opts.FilesToCheck = append(opts.FilesToCheck, a)
		}
	}
	if opts.OutFile != "" && len(opts.FilesToCheck) > 1 {
		opts.FilesToCheck = opts.FilesToCheck[:1]
	}
	return opts, nil
}
