package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"mockupstudio/internal/domain"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the product categories mockups can be rendered onto",
	// The listing is static, so it skips config loading and generator setup.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, _ []string) error {
		for i, c := range domain.Categories() {
			fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, c)
		}
		return nil
	},
}
