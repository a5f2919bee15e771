package cli

import (
	"net/http"

	"github.com/spf13/cobra"
)

var postCmd = &cobra.Command{
	Use:   "post URL",
	Short: "Make a POST request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCall(cmd, http.MethodPost, args, true)
	},
}

func init() {
	addCommonFlags(postCmd)
	postCmd.Flags().StringP("data", "d", "", "Request body (JSON is detected and sent as application/json)")
}
