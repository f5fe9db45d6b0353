// signer
//
// Implements the fixed-format SigV4 challenge signing used by the SASL
// exchange: nonce extraction from the server challenge, the canonical
// request over the nonce hash, and the standard SigV4 key derivation
// scoped to the cassandra service.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

const (
	// TimestampFormat is the millisecond precision timestamp sent in the
	// amzdate field and signed into the string-to-sign.
	TimestampFormat = "2006-01-02T15:04:05.000Z"

	shortDateFormat  = "20060102"
	signingAlgorithm = "AWS4-HMAC-SHA256"
	serviceName      = "cassandra"
	requestTerm      = "aws4_request"
	noncePrefix      = "nonce="
)

// ExtractNonce scans the raw challenge for the literal nonce= prefix and
// returns the bytes up to the next comma, or to end of buffer. The bool is
// false when no nonce field is present; an empty token with the prefix
// present is still found.
func ExtractNonce(challenge []byte) (string, bool) {
	s := string(challenge)
	i := strings.Index(s, noncePrefix)
	if i < 0 {
		return "", false
	}
	token := s[i+len(noncePrefix):]
	if j := strings.IndexByte(token, ','); j >= 0 {
		token = token[:j]
	}
	return token, true
}

// BuildSignedResponse signs the server nonce with the supplied credentials
// and returns the SASL reply in the fixed wire template
// signature=,access_key=,amzdate=,session_token=. The session_token field
// is emitted even when empty.
func BuildSignedResponse(region, nonce string, creds aws.Credentials, t time.Time) string {
	timestamp := t.UTC().Format(TimestampFormat)
	scope := credentialScope(t, region)
	nonceHash := hashHex([]byte(nonce))
	canonical := formCanonicalRequest(creds.AccessKeyID, scope, timestamp, nonceHash)
	toSign := formStringToSign(timestamp, scope, canonical)
	signature := hex.EncodeToString(hmacSHA256(signingKey(creds.SecretAccessKey, t, region), []byte(toSign)))
	return fmt.Sprintf("signature=%s,access_key=%s,amzdate=%s,session_token=%s",
		signature, creds.AccessKeyID, timestamp, creds.SessionToken)
}

func credentialScope(t time.Time, region string) string {
	return fmt.Sprintf("%s/%s/%s/%s", t.UTC().Format(shortDateFormat), region, serviceName, requestTerm)
}

// formCanonicalRequest builds the fixed PUT /authenticate pseudo request the
// protocol signs. Query params are already in canonical (sorted) order.
func formCanonicalRequest(accessKeyID, scope, timestamp, nonceHash string) string {
	query := fmt.Sprintf("X-Amz-Algorithm=%s&X-Amz-Credential=%s&X-Amz-Date=%s&X-Amz-Expires=900",
		signingAlgorithm,
		url.QueryEscape(accessKeyID+"/"+scope),
		url.QueryEscape(timestamp))
	return strings.Join([]string{"PUT", "/authenticate", query, "host:" + serviceName, "", "host", nonceHash}, "\n")
}

// formStringToSign uses the full millisecond timestamp, not the compact
// X-Amz-Date form of header signing. Wire compatibility depends on it.
func formStringToSign(timestamp, scope, canonicalRequest string) string {
	return strings.Join([]string{signingAlgorithm, timestamp, scope, hashHex([]byte(canonicalRequest))}, "\n")
}

// signingKey runs the standard SigV4 derivation chain
// date key -> region key -> service key -> signing key.
func signingKey(secret string, t time.Time, region string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+secret), []byte(t.UTC().Format(shortDateFormat)))
	kRegion := hmacSHA256(kDate, []byte(region))
	kService := hmacSHA256(kRegion, []byte(serviceName))
	return hmacSHA256(kService, []byte(requestTerm))
}

func hashHex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

func hmacSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
