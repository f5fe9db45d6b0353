package cmd

import (
	"fmt"

	"github.com/dnitsch/aws-sigv4-auth/sigv4"
	"github.com/spf13/cobra"
)

var initialCmd = &cobra.Command{
	Use:   "initial",
	Short: "Prints the fixed initial SASL response",
	Long:  `Prints the 7 byte mechanism preamble sent to start the exchange, with NUL bytes escaped for the terminal`,
	RunE:  initial,
}

func init() {
	RootCmd.AddCommand(initialCmd)
}

func initial(cmd *cobra.Command, args []string) error {
	// region and credentials are not part of the preamble, any provider works
	provider, err := sigv4.New(cmd.Context(), sigv4.Config{Region: "-", AccessKeyID: "-"})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%q\n", provider.NewAuthenticator().InitialResponse())
	return nil
}
