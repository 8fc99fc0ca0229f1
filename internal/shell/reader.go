package shell

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/peterh/liner"

	"github.com/aidanlsb/winereview/internal/atomicfile"
)

// errInterrupted is returned by a lineReader when the user presses Ctrl-C.
var errInterrupted = errors.New("interrupted")

// lineReader yields one input line per call. io.EOF ends the session.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// termReader reads from the terminal with line editing and history.
type termReader struct {
	state       *liner.State
	historyFile string
}

func newTermReader(historyFile string) *termReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetTabCompletionStyle(liner.TabPrints)
	state.SetCompleter(complete)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = state.ReadHistory(f)
			f.Close()
		}
	}
	return &termReader{state: state, historyFile: historyFile}
}

func (r *termReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", errInterrupted
	}
	if err != nil {
		return "", err
	}
	if line != "" {
		r.state.AppendHistory(line)
	}
	return line, nil
}

// Close saves history and restores the terminal.
func (r *termReader) Close() error {
	var saveErr error
	if r.historyFile != "" {
		saveErr = atomicfile.WriteFunc(r.historyFile, 0o600, func(w io.Writer) error {
			_, err := r.state.WriteHistory(w)
			return err
		})
	}
	if err := r.state.Close(); err != nil {
		return err
	}
	return saveErr
}

// scanReader reads piped input without prompting.
type scanReader struct {
	scanner *bufio.Scanner
}

func newScanReader(in io.Reader) *scanReader {
	return &scanReader{scanner: bufio.NewScanner(in)}
}

func (r *scanReader) ReadLine(string) (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *scanReader) Close() error { return nil }
