package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var readPassword = term.ReadPassword

// askLine shows prompt and reads one trimmed line. A last line without a
// newline still counts.
func askLine(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	fmt.Fprintf(w, "%s\n> ", prompt)
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askPassword reads without echo. The caller wipes the result.
func askPassword(w io.Writer) ([]byte, error) {
	fmt.Fprint(w, "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	return pw, err
}

// collectLines reads until a blank line or end of input. Lines keep their
// inner text; only the line ending is dropped.
func collectLines(reader *bufio.Reader) ([]string, error) {
	lines := []string{}
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			return lines, nil
		}
		lines = append(lines, line)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return nil, err
		}
	}
}

// askAnswer reads a journal answer or a template body: several lines ended
// by a blank one, joined with "\n".
func askAnswer(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	fmt.Fprintf(w, "%s\n(blank line to finish)\n", prompt)
	lines, err := collectLines(reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// askKeys reads one field key per line, trimmed.
func askKeys(reader *bufio.Reader, prompt string, w io.Writer) ([]string, error) {
	fmt.Fprintf(w, "%s\n(one per line, blank line to finish)\n", prompt)
	lines, err := collectLines(reader)
	if err != nil {
		return nil, err
	}
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines, nil
}
