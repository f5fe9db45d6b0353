package cmd

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/dnitsch/aws-sigv4-auth/internal/identity"
	"github.com/dnitsch/aws-sigv4-auth/sigv4"
	"github.com/spf13/cobra"
)

var (
	whoamiAccessKeyID  string
	whoamiSecretKey    string
	whoamiSessionToken string
	whoamiRoleArn      string

	whoamiCmd = &cobra.Command{
		Use:   "whoami",
		Short: "Prints the STS caller identity of the resolved credential source",
		Long:  `Resolves credentials exactly as the sign command would and validates them against STS GetCallerIdentity`,
		RunE:  whoami,
	}
)

func init() {
	whoamiCmd.PersistentFlags().StringVarP(&whoamiAccessKeyID, "access-key", "", "", "Static access key id. When omitted the default credential chain is used")
	whoamiCmd.PersistentFlags().StringVarP(&whoamiSecretKey, "secret-key", "", "", "Static secret access key")
	whoamiCmd.PersistentFlags().StringVarP(&whoamiSessionToken, "session-token", "", "", "Static session token")
	whoamiCmd.PersistentFlags().StringVarP(&whoamiRoleArn, "role-arn", "", "", "Assume this role via STS before validating")
	RootCmd.AddCommand(whoamiCmd)
}

func whoami(cmd *cobra.Command, args []string) error {
	provider, err := sigv4.New(cmd.Context(), sigv4.Config{
		Region:          region,
		AccessKeyID:     whoamiAccessKeyID,
		SecretAccessKey: whoamiSecretKey,
		SessionToken:    whoamiSessionToken,
		RoleArn:         whoamiRoleArn,
	})
	if err != nil {
		return err
	}

	svc := sts.NewFromConfig(aws.Config{Region: provider.Region(), Credentials: provider.Credentials()})
	caller, err := identity.Whoami(cmd.Context(), svc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Account: %s\nArn: %s\nUserId: %s\n", caller.Account, caller.Arn, caller.UserID)
	return nil
}
