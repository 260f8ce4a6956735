package cmd

import (
	"fmt"
	"log"

	"dump-salvage/internal/pipeline"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var translateCmd = &cobra.Command{
	Use:   "translate <file|->",
	Short: "Print the table's structure translated for the target, without importing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readDump(args[0])
		if err != nil {
			return err
		}
		_, d, err := resolveTarget()
		if err != nil {
			return err
		}

		ts, block, err := pipeline.TranslateOnly(raw, pipeline.Options{
			Dialect: d,
			Table:   viper.GetString("table"),
			Logger:  log.Default(),
		})
		if err != nil {
			return err
		}
		if ts.Empty() {
			fmt.Printf("-- no CREATE TABLE for %s; %d insert statements found\n", block.Table, len(block.Inserts()))
			return nil
		}
		fmt.Println(ts.SQL)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(translateCmd)
}
