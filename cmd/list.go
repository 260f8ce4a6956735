package cmd

import (
	"fmt"

	"dump-salvage/internal/posts"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listTypes []string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recovered posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		types := listTypes
		if len(types) == 0 {
			types = viper.GetStringSlice("post_types")
		}
		summaries, err := posts.NewReader(s).List(types)
		if err != nil {
			return err
		}
		for _, p := range summaries {
			fmt.Printf("%6d  %-19s  %-10s %-8s %s\n", p.ID, p.Date, p.Type, p.Status, p.Title)
		}
		fmt.Printf("%d posts\n", len(summaries))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(listCmd)
	listCmd.Flags().StringSliceVar(&listTypes, "types", nil, "Post types to list (comma-separated, default from post_types)")
}
