package sigv4

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/dnitsch/aws-sigv4-auth/internal/config"
)

var (
	// ErrMissingRegion is returned at construction when no region could be
	// resolved. The text is part of the surfaced error contract.
	ErrMissingRegion = errors.New("[SIGV4_MISSING_REGION] No region provided. You must either provide a region or set environment variable [AWS_REGION]")
	// ErrMissingNonce is wrapped with the decoded challenge text when the
	// server challenge carries no nonce= field.
	ErrMissingNonce = errors.New("[SIGV4_MISSING_NONCE] Did not find nonce in SigV4 challenge")
)

// Config carries the recognised provider options. All fields are optional
// except that a region must be resolvable from Region or the AWS_REGION
// environment variable.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	// RoleArn optionally wraps the resolved credential source in an STS
	// assume role provider before signing.
	RoleArn string
	// CredentialsProvider overrides credential source selection entirely,
	// e.g. when the embedding driver already holds a resolved aws.Config.
	CredentialsProvider aws.CredentialsProvider
	// Env is the environment lookup used for the default region. Defaults
	// to os.Getenv.
	Env func(string) string
	// Now is the signing clock captured per authenticator. Defaults to
	// time.Now.
	Now func() time.Time
}

// AuthProvider holds the resolved {region, credential source} pair and
// produces one Authenticator per connection attempt. Immutable after
// construction and safe for reuse across connections.
type AuthProvider struct {
	region string
	creds  aws.CredentialsProvider
	now    func() time.Time
}

// New resolves the region and credential source for the provider.
//
// Region resolution order is the explicit Config.Region then the AWS_REGION
// environment variable; neither yielding a value is a construction failure.
// When AccessKeyID is set a static credential source is used as given, even
// if the secret or session token are absent - validation of the material is
// left to the server verifying the signature. Otherwise the sdk default
// discovery chain (environment, shared config, IMDS/ECS) is used.
func New(ctx context.Context, cfg Config) (*AuthProvider, error) {
	env := cfg.Env
	if env == nil {
		env = os.Getenv
	}
	region := cfg.Region
	if region == "" {
		region = env(config.AWS_REGION_VAR)
	}
	if region == "" {
		return nil, ErrMissingRegion
	}

	creds, err := resolveCredentialSource(ctx, region, cfg)
	if err != nil {
		return nil, err
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &AuthProvider{region: region, creds: creds, now: now}, nil
}

func resolveCredentialSource(ctx context.Context, region string, cfg Config) (aws.CredentialsProvider, error) {
	var provider aws.CredentialsProvider
	switch {
	case cfg.CredentialsProvider != nil:
		provider = cfg.CredentialsProvider
	case cfg.AccessKeyID != "":
		provider = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)
	default:
		ac, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
		if err != nil {
			return nil, err
		}
		provider = ac.Credentials
	}
	if cfg.RoleArn != "" {
		svc := sts.NewFromConfig(aws.Config{Region: region, Credentials: provider})
		provider = aws.NewCredentialsCache(stscreds.NewAssumeRoleProvider(svc, cfg.RoleArn))
	}
	return provider, nil
}

// Region the provider signs for.
func (p *AuthProvider) Region() string {
	return p.region
}

// Credentials exposes the resolved credential source, e.g. for validating
// the material against STS before connecting.
func (p *AuthProvider) Credentials() aws.CredentialsProvider {
	return p.creds
}

// NewAuthenticator binds a fresh single-exchange Authenticator to the
// provider's region, credential source and the current time.
func (p *AuthProvider) NewAuthenticator() *Authenticator {
	return &Authenticator{
		region: p.region,
		creds:  p.creds,
		date:   p.now().UTC(),
		state:  stateCreated,
	}
}
