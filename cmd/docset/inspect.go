package main

import (
	"fmt"

	"github.com/arthur-debert/docset/docset"
	"github.com/spf13/cobra"
)

var inspectVerbose bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the contents of a persisted document set",
	Long:  "Load the document set stored under --key and print its metadata and the identities in order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadSet(cmd.Context())
		if err != nil {
			return err
		}
		meta := set.Metadata()
		fmt.Printf("store:    %s (version %s)\n", meta.StoreID, meta.Version)
		fmt.Printf("created:  %s\n", meta.CreatedAt)
		fmt.Printf("updated:  %s\n", meta.UpdatedAt)
		fmt.Printf("records:  %d\n", set.Count())
		for i, rec := range set.Records() {
			if doc, ok := rec.(*docset.Document); ok && inspectVerbose {
				fmt.Printf("%6d  %d  %s\n", i, doc.DocID, doc.Title)
				continue
			}
			fmt.Printf("%6d  %d\n", i, rec.ID())
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVarP(&inspectVerbose, "verbose", "v", false, "include document titles")
}
