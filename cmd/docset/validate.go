package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// rawEnvelope mirrors just enough of the stored JSON to count what is on
// disk before the decode path drops duplicates.
type rawEnvelope struct {
	Documents []struct {
		ID uint64 `json:"id"`
	} `json:"documents"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a persisted document set for identity problems",
	Long:  "Load the document set stored under --key, re-running every stored record through the normal insertion path, and report zero or duplicate identities.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		data, err := st.Load(ctx, storeKey)
		if err != nil {
			return fmt.Errorf("failed to load key %q: %w", storeKey, err)
		}

		var raw rawEnvelope
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("stored blob is not a document set envelope: %w", err)
		}
		seen := make(map[uint64]int)
		zeros := 0
		for _, d := range raw.Documents {
			if d.ID == 0 {
				zeros++
				continue
			}
			seen[d.ID]++
		}
		duplicates := 0
		for _, n := range seen {
			if n > 1 {
				duplicates += n - 1
			}
		}

		fmt.Printf("stored records:       %d\n", len(raw.Documents))
		fmt.Printf("unique identities:    %d\n", len(seen))
		fmt.Printf("zero identities:      %d\n", zeros)
		fmt.Printf("duplicate identities: %d\n", duplicates)
		if zeros > 0 {
			return fmt.Errorf("invalid: %d record(s) have no identity and would fail to load", zeros)
		}
		if duplicates > 0 {
			return fmt.Errorf("invalid: %d duplicate record(s) would be dropped on load", duplicates)
		}
		fmt.Println("ok")
		return nil
	},
}
