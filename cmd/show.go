package cmd

import (
	"fmt"
	"strconv"

	"dump-salvage/internal/posts"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one recovered post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post ID %q: %w", args[0], err)
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := posts.NewReader(s).Get(id)
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n\n%s\n", p.Title, p.Content)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
}
