package signer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/dnitsch/aws-sigv4-auth/internal/signer"
)

func Test_ExtractNonce(t *testing.T) {
	ttests := map[string]struct {
		challenge string
		nonce     string
		found     bool
	}{
		"nonce followed by comma": {
			challenge: "nonce=91703fdc2ef562e19fbdab0f58e42fe5,version=1",
			nonce:     "91703fdc2ef562e19fbdab0f58e42fe5",
			found:     true,
		},
		"nonce at end of buffer": {
			challenge: "nonce=91703fdc2ef562e19fbdab0f58e42fe5",
			nonce:     "91703fdc2ef562e19fbdab0f58e42fe5",
			found:     true,
		},
		"nonce not the first field": {
			challenge: "realm=keyspaces,nonce=abc123,version=1",
			nonce:     "abc123",
			found:     true,
		},
		"empty token before comma": {
			challenge: "nonce=,version=1",
			nonce:     "",
			found:     true,
		},
		"no nonce field": {
			challenge: "realm=keyspaces,version=1",
			found:     false,
		},
		"empty challenge": {
			challenge: "",
			found:     false,
		},
	}
	for name, tt := range ttests {
		t.Run(name, func(t *testing.T) {
			nonce, found := signer.ExtractNonce([]byte(tt.challenge))
			if found != tt.found {
				t.Fatalf("got found: %v, wanted: %v", found, tt.found)
			}
			if nonce != tt.nonce {
				t.Errorf("got nonce: %q, wanted: %q", nonce, tt.nonce)
			}
		})
	}
}

func Test_BuildSignedResponse_known_exchange(t *testing.T) {
	creds := aws.Credentials{
		AccessKeyID:     "UserID-1",
		SecretAccessKey: "UserSecretKey-1",
		SessionToken:    "SessiosnToken-1",
	}
	signedAt := time.Date(2020, 6, 9, 22, 41, 51, 0, time.UTC)

	got := signer.BuildSignedResponse("us-west-2", "91703fdc2ef562e19fbdab0f58e42fe5", creds, signedAt)

	want := "signature=7f3691c18a81b8ce7457699effbfae5b09b4e0714ab38c1292dbdf082c9ddd87," +
		"access_key=UserID-1,amzdate=2020-06-09T22:41:51.000Z,session_token=SessiosnToken-1"
	if got != want {
		t.Errorf("got: %s, wanted: %s", got, want)
	}
}

func Test_BuildSignedResponse_without_session_token(t *testing.T) {
	creds := aws.Credentials{
		AccessKeyID:     "UserID-1",
		SecretAccessKey: "UserSecretKey-1",
	}
	signedAt := time.Date(2020, 6, 9, 22, 41, 51, 0, time.UTC)

	got := signer.BuildSignedResponse("us-west-2", "91703fdc2ef562e19fbdab0f58e42fe5", creds, signedAt)

	// session_token field stays in the template even when empty
	if !strings.HasSuffix(got, ",session_token=") {
		t.Errorf("got: %s, wanted trailing empty session_token field", got)
	}
}
