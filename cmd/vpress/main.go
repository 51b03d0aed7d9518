// Command vpress compresses video with hardware HEVC encoders, searching
// per file for the lowest quality setting that meets a VMAF target within
// a size budget.
package main

import "github.com/cliang-dev/vpress/internal/cli"

func main() {
	cli.Execute()
}
