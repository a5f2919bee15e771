package cli

import (
	"net/http"

	"github.com/spf13/cobra"
)

var putCmd = &cobra.Command{
	Use:   "put URL",
	Short: "Make a PUT request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCall(cmd, http.MethodPut, args, true)
	},
}

func init() {
	addCommonFlags(putCmd)
	putCmd.Flags().StringP("data", "d", "", "Request body (JSON is detected and sent as application/json)")
}
