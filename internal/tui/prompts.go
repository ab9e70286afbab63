package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"gitmerge.dev/gitmerge/internal/utils"
)

// AffirmativeAnswer is the only answer that confirms a prompt
const AffirmativeAnswer = "y"

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// LineConfirmer writes the prompt and reads a single line.
// Only the exact answer "y" confirms; the trailing newline is the only byte removed.
type LineConfirmer struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLineConfirmer constructs a confirmer from the provided reader and writer
func NewLineConfirmer(input io.Reader, output io.Writer) *LineConfirmer {
	return &LineConfirmer{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes prompt and blocks until a line (or EOF) arrives
func (c *LineConfirmer) Confirm(prompt string) (bool, error) {
	if c.writer != nil {
		if _, err := io.WriteString(c.writer, prompt); err != nil {
			return false, err
		}
	}

	line, err := c.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	return IsAffirmative(strings.TrimSuffix(line, "\n")), nil
}

// SurveyConfirmer renders the prompt with survey on an interactive terminal
type SurveyConfirmer struct{}

// Confirm asks for free-form input and applies the same exact-match rule as LineConfirmer
func (c *SurveyConfirmer) Confirm(prompt string) (bool, error) {
	var answer string
	err := survey.AskOne(&survey.Input{Message: strings.TrimSpace(prompt)}, &answer)
	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return IsAffirmative(answer), nil
}

// IsAffirmative reports whether answer is exactly "y"
func IsAffirmative(answer string) bool {
	return answer == AffirmativeAnswer
}

// NewConfirmer picks survey when stdin is a terminal and a line reader otherwise
func NewConfirmer(input *os.File, output io.Writer) Confirmer {
	if utils.IsInteractive(input) {
		return &SurveyConfirmer{}
	}
	return NewLineConfirmer(input, output)
}

// MergeConfirmationPrompt renders the question asked before integrating a branch
func MergeConfirmationPrompt(branchName, trunk string) string {
	return fmt.Sprintf("🤔 Are you sure you want to merge branch %s into %s? [y/n] ", ColorBranchName(branchName), trunk)
}
