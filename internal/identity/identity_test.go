package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/dnitsch/aws-sigv4-auth/internal/identity"
)

type mockStsApi struct {
	getCallId func(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

func (m *mockStsApi) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return m.getCallId(ctx, params, optFns...)
}

func Test_Whoami(t *testing.T) {
	ttests := map[string]struct {
		svc       func(t *testing.T) identity.CallerIdentityApi
		expectErr bool
		account   string
	}{
		"succeeds with resolved creds": {
			svc: func(t *testing.T) identity.CallerIdentityApi {
				m := &mockStsApi{}
				m.getCallId = func(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
					return &sts.GetCallerIdentityOutput{
						Account: aws.String("111122223333"),
						Arn:     aws.String("arn:aws:iam::111122223333:user/tester"),
						UserId:  aws.String("AIDAEXAMPLE"),
					}, nil
				}
				return m
			},
			account: "111122223333",
		},
		"fails when sts rejects the material": {
			svc: func(t *testing.T) identity.CallerIdentityApi {
				m := &mockStsApi{}
				m.getCallId = func(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
					return nil, &smithy.GenericAPIError{Code: "InvalidClientTokenId", Message: "The security token is invalid"}
				}
				return m
			},
			expectErr: true,
		},
	}
	for name, tt := range ttests {
		t.Run(name, func(t *testing.T) {
			got, err := identity.Whoami(context.TODO(), tt.svc(t))
			if tt.expectErr {
				if err == nil {
					t.Fatal("got nil, wanted an error")
				}
				if !errors.Is(err, identity.ErrUnableToValidate) {
					t.Errorf("got %v, wanted wrapped ErrUnableToValidate", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("got %v, wanted nil", err)
			}
			if got.Account != tt.account {
				t.Errorf("got account: %s, wanted: %s", got.Account, tt.account)
			}
		})
	}
}
