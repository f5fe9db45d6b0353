package cmd

import (
	"fmt"
	"os"

	"github.com/dnitsch/aws-sigv4-auth/internal/config"
	"github.com/dnitsch/aws-sigv4-auth/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	region  string
	cfgFile string
	verbose bool

	RootCmd = &cobra.Command{
		Use:   config.SELF_NAME,
		Short: "CLI helper for the SigV4 SASL authentication exchange",
		Long: `CLI helper around the SigV4 SASL authenticator library.
Signs server issued challenges with AWS credentials resolved from explicit flags or the default discovery chain (env vars, shared config, instance metadata).
Useful for replaying a handshake against a captured challenge or verifying which identity a credential source resolves to`,
	}
)

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		util.Exit(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region used for the signing scope. Falls back to the AWS_REGION environment variable")
	RootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", fmt.Sprintf("config file (default is $HOME/.%s.yaml)", config.SELF_NAME))
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(fmt.Sprintf(".%s", config.SELF_NAME))
	}

	viper.AutomaticEnv()

	util.IsTraceEnabled = verbose

	if err := viper.ReadInConfig(); err == nil {
		util.Traceln("Using config file: %s", viper.ConfigFileUsed())
	}
}
