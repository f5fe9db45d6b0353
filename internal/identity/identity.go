package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

var ErrUnableToValidate = errors.New("unable to validate credentials")

type CallerIdentityApi interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Caller is the STS view of the principal the resolved credentials belong to.
type Caller struct {
	Account string
	Arn     string
	UserID  string
}

// Whoami validates the resolved credential source against STS and returns
// the caller identity it maps to.
func Whoami(ctx context.Context, svc CallerIdentityApi) (*Caller, error) {
	resp, err := svc.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to get caller identity: %s, %w", err.Error(), ErrUnableToValidate)
	}
	return &Caller{
		Account: aws.ToString(resp.Account),
		Arn:     aws.ToString(resp.Arn),
		UserID:  aws.ToString(resp.UserId),
	}, nil
}
