package at

import (
	"bufio"
	"bytes"
	"strings"
)

// Splitter is used for tokenizing modem responses. It uses the signature
// of bufio.SplitFunc so it can be directly used with bufio.Scanner.
//
// It splits the input on LF and drops a single CR preceding the LF, so
// both CRLF and bare LF line endings are accepted. The raw data prompt
// (">") is not terminated by a line ending and is returned as the final
// token at EOF.
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining data is returned as the final token.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, bytes.TrimSuffix(data[0:i], []byte("\r")), nil
	}

	if atEOF {
		return len(data), bytes.TrimSuffix(data, []byte("\r")), nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter

// Lines splits an accumulated response into its lines.
func Lines(text string) []string {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 256), len(text)+1)
	scanner.Split(Splitter)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

// Classify identifies the nature of a response line
func Classify(line string) LineType {
	line = strings.TrimSpace(line)

	// Direct matches for final results
	switch line {
	case OK, ERROR, Error, Fail, SendOK:
		return TypeFinal
	case Prompt:
		return TypePrompt
	case Ready:
		return TypeReady
	}

	// Prefix matches
	switch {
	case strings.HasPrefix(line, DataPrefix):
		return TypeData
	case strings.HasPrefix(line, StatusPrefix):
		return TypeStatus
	default:
		return TypeText
	}
}
