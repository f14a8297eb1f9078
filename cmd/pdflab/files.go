package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List indexed documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := newLocalWorkspace()
		if err := ws.ReloadFiles(cmd.Context()); err != nil {
			return err
		}

		files := ws.View().Files.Available
		if len(files) == 0 {
			fmt.Println("No documents indexed.")
			return nil
		}
		for _, name := range files {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
}
