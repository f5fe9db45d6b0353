package cmd

import (
	"fmt"
	"time"

	"github.com/dnitsch/aws-sigv4-auth/internal/config"
	"github.com/dnitsch/aws-sigv4-auth/internal/util"
	"github.com/dnitsch/aws-sigv4-auth/sigv4"
	"github.com/spf13/cobra"
)

var (
	signInput = config.SignConfig{}

	signCmd = &cobra.Command{
		Use:   "sign <flags>",
		Short: "Signs a server challenge and prints the SASL reply",
		Long: `Extracts the nonce from the supplied challenge, resolves credentials and prints the signed SASL reply.
Credentials come from --access-key/--secret-key/--session-token when given, otherwise from the default discovery chain`,
		RunE: sign,
	}
)

func init() {
	signCmd.PersistentFlags().StringVarP(&signInput.Challenge, "challenge", "c", "", "Raw challenge as received from the server, must contain a nonce=<token> field")
	signCmd.PersistentFlags().StringVarP(&signInput.AccessKeyID, "access-key", "", "", "Static access key id. When omitted the default credential chain is used")
	signCmd.PersistentFlags().StringVarP(&signInput.SecretAccessKey, "secret-key", "", "", "Static secret access key")
	signCmd.PersistentFlags().StringVarP(&signInput.SessionToken, "session-token", "", "", "Static session token")
	signCmd.PersistentFlags().StringVarP(&signInput.RoleArn, "role-arn", "", "", "Assume this role via STS before signing")
	signCmd.PersistentFlags().StringVarP(&signInput.Timestamp, "timestamp", "t", "", "RFC3339 signing timestamp for deterministic replay. Defaults to now")
	_ = signCmd.MarkPersistentFlagRequired("challenge")
	RootCmd.AddCommand(signCmd)
}

func sign(cmd *cobra.Command, args []string) error {
	cfg := sigv4.Config{
		Region:          region,
		AccessKeyID:     signInput.AccessKeyID,
		SecretAccessKey: signInput.SecretAccessKey,
		SessionToken:    signInput.SessionToken,
		RoleArn:         signInput.RoleArn,
	}
	if signInput.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, signInput.Timestamp)
		if err != nil {
			return fmt.Errorf("unable to parse timestamp: %s, %w", signInput.Timestamp, err)
		}
		cfg.Now = func() time.Time { return ts }
	}

	provider, err := sigv4.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	authenticator := provider.NewAuthenticator()
	util.Traceln("initial response: %q", authenticator.InitialResponse())

	resp, err := authenticator.EvaluateChallenge(cmd.Context(), []byte(signInput.Challenge))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(resp))
	return nil
}
