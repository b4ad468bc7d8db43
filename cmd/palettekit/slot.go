package main

import (
	"fmt"
	"strings"

	"github.com/jsvensson/palettekit"
	hexcolor "github.com/jsvensson/palettekit/internal/color"
	"github.com/spf13/cobra"
)

var flagWrite bool

var slotCmd = &cobra.Command{
	Use:   "slot FILE FAMILY HEX",
	Short: "Pick a free scale slot for a new color",
	Long:  "Print the slot HEX would be assigned in FAMILY. With --write, add it to FILE.",
	Args:  cobra.ExactArgs(3),
	RunE:  runSlot,
}

func init() {
	slotCmd.Flags().BoolVarP(&flagWrite, "write", "w", false, "add the color to the file")
	rootCmd.AddCommand(slotCmd)
}

func runSlot(cmd *cobra.Command, args []string) error {
	path, family := args[0], args[1]

	c, err := hexcolor.ParseHex(strings.TrimSpace(args[2]))
	if err != nil {
		return err
	}

	doc, err := palettekit.Load(path)
	if err != nil {
		return err
	}

	updated, slot, err := doc.InsertColor(family, c)
	if err != nil {
		return fmt.Errorf("%s: %w", family, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), slot)
	if !flagWrite {
		return nil
	}

	if err := palettekit.Save(path, updated); err != nil {
		return err
	}
	success(cmd.ErrOrStderr(), "added %s.%d %s\n", family, slot, c.Hex())
	return nil
}
