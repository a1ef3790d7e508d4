package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/adreel/internal/promo"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the built-in variants and scenes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		for _, name := range promo.Names() {
			v, err := promo.Lookup(name, false)
			if err != nil {
				return err
			}
			scenes := make([]string, len(v.Windows))
			for i, win := range v.Windows {
				scenes[i] = win.Scene
			}
			fmt.Fprintf(w, "%-8s %5.1fs  %-40s %s\n", name, v.Settings.Seconds(), v.Description, strings.Join(scenes, " → "))
		}
		fmt.Fprintf(w, "\nscenes: %s\n", strings.Join(promo.SceneNames(), ", "))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of adreel",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "adreel version %s\n", BuildVersion)
	},
}

func init() {
	rootCmd.AddCommand(variantsCmd, versionCmd)
}
