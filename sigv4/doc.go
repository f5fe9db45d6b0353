// sigv4
//
// SASL authenticator that proves possession of AWS credentials through a
// SigV4 signed challenge/response instead of a static password.
//
// An AuthProvider resolves the region and credential source once; each
// connection attempt then takes a fresh Authenticator and runs the two step
// exchange: a fixed initial response, then a signed reply over the server
// issued nonce.
//
//	provider, err := sigv4.New(ctx, sigv4.Config{Region: "us-west-2"})
//	if err != nil {
//		// no region resolvable
//	}
//	auth := provider.NewAuthenticator()
//	ir := auth.InitialResponse()
//	// send ir, receive challenge
//	resp, err := auth.EvaluateChallenge(ctx, challenge)
//
// Credential discovery, caching and refresh are delegated to the
// aws-sdk-go-v2 credential chain.
package sigv4
