package config

const (
	SELF_NAME      = "aws-sigv4-auth"
	AWS_REGION_VAR = "AWS_REGION"
)

// SignConfig is the flag/file sourced input for the sign command.
type SignConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	RoleArn         string
	Challenge       string
	Timestamp       string
}
