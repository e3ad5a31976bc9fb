// Package main implements clip8, a CHIP-8 virtual machine.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "clip8",
		Short:        "CHIP-8 virtual machine",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCommand(), newDecodeCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
