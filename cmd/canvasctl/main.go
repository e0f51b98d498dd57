// canvasctl is a small operational CLI for talking to a Canvas instance with
// the same client the gateway uses. It is handy for obtaining a token via the
// authorization-code flow and for poking at courses without a running gateway.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "canvasctl",
	Short: "Canvas LMS client CLI",
	Long: `Command line client for Canvas LMS.

Configuration comes from the same environment variables the gateway reads
(CANVAS_BASE_URL, CANVAS_CLIENT_ID, CANVAS_CLIENT_SECRET, CANVAS_REDIRECT_URI,
CANVAS_ACCESS_TOKEN), optionally loaded from .env files.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
