// ABOUTME: CLI command for classifying a BMI value.
// ABOUTME: Accepts comma or dot decimals and prints the coloured category.
package main

import (
	"fmt"
	"strings"

	"github.com/harperreed/gymprogress/internal/bmi"
	"github.com/harperreed/gymprogress/internal/render"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <bmi>",
	Short: "Classify a BMI value",
	Long: `Classify a BMI value into its category.

CATEGORIES:

  < 18.5         Abaixo do peso
  18.5 - 24.99   Peso normal
  25 - 29.99     Sobrepeso
  30 - 34.99     Obesidade Grau I
  35 - 39.99     Obesidade Grau II
  >= 40          Obesidade Grau III

EXAMPLES:

  gymprogress classify 22.4
  gymprogress classify 31,7`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := bmi.ClassifyString(strings.TrimSpace(args[0]))
		fmt.Fprintln(cmd.OutOrStdout(), render.Classification(c))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
