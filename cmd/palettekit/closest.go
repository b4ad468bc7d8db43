package main

import (
	"fmt"
	"strings"

	"github.com/jsvensson/palettekit"
	hexcolor "github.com/jsvensson/palettekit/internal/color"
	"github.com/jsvensson/palettekit/internal/search"
	"github.com/spf13/cobra"
)

var (
	flagFile       string
	flagPerceptual bool
)

var closestCmd = &cobra.Command{
	Use:   "closest HEX",
	Short: "Find the palette color nearest to HEX",
	Args:  cobra.ExactArgs(1),
	RunE:  runClosest,
}

func init() {
	closestCmd.Flags().StringVarP(&flagFile, "file", "f", "palette.json", "path to palette file")
	closestCmd.Flags().BoolVar(&flagPerceptual, "perceptual", false, "measure distance in CIE L*a*b* instead of decimal value")
	rootCmd.AddCommand(closestCmd)
}

func runClosest(cmd *cobra.Command, args []string) error {
	target, err := hexcolor.ParseHex(strings.TrimSpace(args[0]))
	if err != nil {
		return err
	}

	doc, err := palettekit.Load(flagFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagPerceptual {
		m, ok := search.ClosestPerceptual(target, doc)
		if !ok {
			return fmt.Errorf("%s has no colors", flagFile)
		}
		fmt.Fprintf(out, "%s %s (distance %.2f)\n", cyan.Sprintf("%s.%d", m.Family, m.Slot), m.Color.Hex(), m.Distance)
		return nil
	}

	m, ok := search.Closest(target, doc)
	if !ok {
		return fmt.Errorf("%s has no colors", flagFile)
	}
	fmt.Fprintf(out, "%s %s (distance %d)\n", cyan.Sprintf("%s.%d", m.Family, m.Slot), m.Color.Hex(), m.Distance)
	return nil
}
