package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"dump-salvage/internal/engine"
	"dump-salvage/internal/pipeline"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Recover the table from a dump into a fresh store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readDump(args[0])
		if err != nil {
			return err
		}

		cfg, d, err := resolveTarget()
		if err != nil {
			return err
		}
		tableName := viper.GetString("table")
		fmt.Printf("Recovering %s into %s (%s)\n", tableName, cfg.Driver, cfg.DSN)

		start := time.Now()
		var bar *uiprogress.Bar
		opts := pipeline.Options{
			Dialect:  d,
			Location: cfg.DSN,
			Table:    tableName,
			Logger:   log.Default(),
			OnStart: func(statements int) {
				if statements == 0 {
					return
				}
				uiprogress.Start()
				bar = uiprogress.AddBar(statements).AppendCompleted().PrependElapsed()
				bar.PrependFunc(func(b *uiprogress.Bar) string {
					return "Importing: "
				})
			},
			OnProgress: func() {
				if bar != nil {
					bar.Incr()
				}
			},
		}

		res, err := pipeline.Run(raw, opts)
		if bar != nil {
			uiprogress.Stop()
		}
		if err != nil {
			return err
		}

		printReport(res, viper.GetBool("verbose"))
		log.Printf("Salvage Done! Time Elapsed: %s", time.Since(start))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(importCmd)
}

// readDump reads the dump from path, or from stdin when path is "-".
func readDump(path string) ([]byte, error) {
	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read dump from stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}
	return raw, nil
}

func printReport(res *engine.Result, detailed bool) {
	fmt.Println("\n📊 Summary Report:")
	fmt.Printf("Tables in store : %v\n", res.Tables)
	fmt.Printf("%-16s: %d rows - %s\n", res.Table, res.Rows, res.Status())
	if res.FallbackUsed {
		fmt.Println("[!] Translated structure unavailable or rejected: fallback structure used")
	}
	if res.AnyInsertFailed {
		fmt.Println("[!] At least one data statement was dropped entirely")
	}

	if detailed {
		for i, o := range res.Outcomes {
			icon := "✓"
			if o.Status != engine.Succeeded {
				icon = "!"
			}
			fmt.Printf("[%s] [%02d/%02d] line %-8d : %d/%d rows - %s\n",
				icon, i+1, len(res.Outcomes), o.Line, o.Imported, o.Rows, o.Status)
			if o.Err != nil {
				fmt.Printf("    └ Error: %v\n", o.Err)
			}
		}
		for _, w := range res.Warnings {
			fmt.Printf("Warning: %v\n", w)
		}
	}
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Rows attempted: %d, imported: %d, lost: %d\n", res.Attempted, res.Imported, res.Lost)
}
