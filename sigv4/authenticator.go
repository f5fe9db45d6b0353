package sigv4

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/dnitsch/aws-sigv4-auth/internal/signer"
)

// InitialResponseLen is the fixed size of the first SASL message.
const InitialResponseLen = 7

var ErrExchangeFinished = errors.New("authentication exchange already finished, create a new authenticator per attempt")

type exchangeState int

const (
	stateCreated exchangeState = iota
	stateAwaitingChallenge
	stateCompleted
	stateFailed
)

// Authenticator drives one SASL exchange: InitialResponse followed by
// EvaluateChallenge, in that order, exactly once. Instances are exclusively
// owned by the connection that created them and are discarded after the
// exchange.
type Authenticator struct {
	region string
	creds  aws.CredentialsProvider
	date   time.Time
	state  exchangeState
}

// InitialResponse returns the first message of the exchange: the mechanism
// tag followed by two NUL bytes. It carries no credential material and
// cannot fail.
func (a *Authenticator) InitialResponse() []byte {
	if a.state == stateCreated {
		a.state = stateAwaitingChallenge
	}
	return []byte("SigV4\x00\x00")
}

// EvaluateChallenge extracts the server nonce from the challenge, resolves
// credentials and returns the signed reply. Credential resolution is the
// only point that may block on external I/O and honours ctx. Resolution
// failures from the chain are returned to the caller unaltered.
func (a *Authenticator) EvaluateChallenge(ctx context.Context, challenge []byte) ([]byte, error) {
	if a.state == stateCompleted || a.state == stateFailed {
		return nil, ErrExchangeFinished
	}
	nonce, found := signer.ExtractNonce(challenge)
	if !found {
		a.state = stateFailed
		return nil, fmt.Errorf("%w:[%s]", ErrMissingNonce, string(challenge))
	}
	creds, err := a.creds.Retrieve(ctx)
	if err != nil {
		a.state = stateFailed
		return nil, err
	}
	a.state = stateCompleted
	return []byte(signer.BuildSignedResponse(a.region, nonce, creds, a.date)), nil
}
