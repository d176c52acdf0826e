package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/eiannone/keyboard"
	"github.com/mattn/go-isatty"
)

// Confirm asks a yes/no question and waits for a single keypress.
// Only 'y' or 'Y' confirms; anything else declines. When stdin is not a
// terminal (piped input, CI) it falls back to reading a line.
func Confirm(prompt string) (bool, error) {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr)
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	}

	if err := keyboard.Open(); err != nil {
		return false, fmt.Errorf("failed to open keyboard: %w", err)
	}
	defer keyboard.Close()

	char, key, err := keyboard.GetKey()
	if err != nil {
		fmt.Fprintln(os.Stderr)
		return false, err
	}
	fmt.Fprintf(os.Stderr, "%c\n", char)

	if key == keyboard.KeyCtrlC || key == keyboard.KeyEsc {
		return false, nil
	}
	return char == 'y' || char == 'Y', nil
}
