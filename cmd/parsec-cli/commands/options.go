package commands

import (
	"encoding/json"
	"fmt"

	"parsecquery/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(optionsCmd)
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Shows every form field and its candidate values, the active one marked [x].",
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(cmd.Context())

		rendered, err := json.MarshalIndent(client.Options(), "", "   ")
		if err != nil {
			serviceutil.Fatal("failed to render options", err)
		}
		fmt.Println(string(rendered))
	},
}
