package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var linkOut string

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link the three exports on order number and print a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("link"); err != nil {
			return err
		}

		store, err := loadStore(cfg.Data)
		if err != nil {
			return err
		}

		fmt.Println(store.Summary.String())

		if linkOut != "" {
			f, err := os.Create(linkOut)
			if err != nil {
				return eris.Wrapf(err, "create %s", linkOut)
			}
			defer f.Close()

			enc := json.NewEncoder(f)
			enc.SetIndent("", "  ")
			if err := enc.Encode(store); err != nil {
				return eris.Wrap(err, "encode store")
			}
			fmt.Printf("\nWrote linked store to %s\n", linkOut)
		}

		return nil
	},
}

func init() {
	linkCmd.Flags().StringVar(&linkOut, "out", "", "write the linked store as JSON to this path")
	rootCmd.AddCommand(linkCmd)
}
