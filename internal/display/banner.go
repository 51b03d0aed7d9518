package display

import (
	"fmt"
	"os"

	"github.com/cliang-dev/vpress/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `
__   ___ __  _ __ ___  ___ ___
\ \ / / '_ \| '__/ _ \/ __/ __|
 \ V /| |_) | | |  __/\__ \__ \
  \_/ | .__/|_|  \___||___/___/
      |_|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
