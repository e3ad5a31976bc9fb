package main

import (
	"os"

	"gbemu/clip8/internal/chip8"
	"gbemu/clip8/internal/listing"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <rom>",
		Short: "print the decoded instructions of a CHIP-8 program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(chip8.ErrRomNotFound, "%s: %v", args[0], err)
			}
			if len(rom) > chip8.MaxROMSize {
				return errors.Wrapf(chip8.ErrRomTooLarge, "%d bytes (max: %d)", len(rom), chip8.MaxROMSize)
			}
			return listing.Write(cmd.OutOrStdout(), rom)
		},
	}
}
