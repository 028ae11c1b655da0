package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nova-client/launcher/internal/manifest"
)

func newVersionsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List available game versions by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := newPipeline()
			if err != nil {
				return err
			}

			index, err := p.Loader.LoadIndex(cmd.Context())
			if err != nil {
				return err
			}

			for _, cat := range manifest.Categories {
				if category != "" && category != string(cat) {
					continue
				}
				ids := index.ByCategory[cat]
				if len(ids) == 0 {
					continue
				}
				fmt.Printf("%s:\n", cat)
				for _, id := range ids {
					fmt.Printf("  %s\n", id)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", `Only list one category (e.g. "Release")`)
	return cmd
}
