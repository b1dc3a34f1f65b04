package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silis/backend/internal/config"
	"github.com/silis/backend/internal/repository"
	"github.com/silis/backend/internal/service"
)

func contentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect or reset the site content document",
	}
	cmd.AddCommand(contentShowCmd(), contentResetCmd())
	return cmd
}

func contentShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored site content and its metadata as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStores(cmd.Context(), func(_ *config.Config, stores *repository.Stores) error {
				data, meta, err := service.NewContentService(stores.Content).AdminView(cmd.Context())
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(map[string]any{"data": data, "meta": meta})
			})
		},
	}
}

func contentResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the site content with the built-in defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			return withStores(cmd.Context(), func(_ *config.Config, stores *repository.Stores) error {
				if _, err := service.NewContentService(stores.Content).Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "site content reset to defaults")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
