// Package ethproofs provides a typed client for the ethproofs API.
//
// Ethproofs tracks zkVM proofs of Ethereum blocks. Provers register
// clusters or single machines, then report each proof as it moves through
// queued, proving and proved.
//
// # Architecture
//
//   - Requests: one type per endpoint, deriving method, path and body
//   - Builders: staged construction of the create requests, validated in Build
//   - Responses: one type per endpoint, joined by the Response interface
//   - Client: dispatches a request and decodes the response it expects
//
// # Usage
//
//	client, err := ethproofs.NewClient(
//		"your-api-key",
//		ethproofs.WithLogger(logger),
//		ethproofs.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	req, err := ethproofs.NewCreateClusterRequestBuilder().
//		Nickname("my-cluster").
//		ZkvmVersionID(1).
//		AddConfiguration(config).
//		Build()
//	if err != nil {
//		log.Fatal(err) // *ethproofs.ValidationError
//	}
//
//	cluster, err := client.CreateCluster(ctx, req)
//
// Do pairs any request with its response type at compile time:
//
//	block, err := ethproofs.Do[ethproofs.GetBlockDetailsResponse](ctx, client, ethproofs.GetBlockDetailsRequest{
//		BlockNumber: ethproofs.FromInt(23982100),
//	})
//
// # Error Handling
//
// Construction and dispatch errors are typed and match sentinels through
// errors.Is:
//
//   - InvalidURLError (ErrInvalidURL): unusable base URL
//   - RequestError (ErrRequest): encoding, transport or read failure
//   - APIError (ErrAPI): non-2xx status, with the raw body as Message
//   - ParseError (ErrParse): body does not match the expected response
//   - ValidationError (ErrMissingField, ErrInvalidField, ErrMalformedRequest):
//     rejected by a builder, never sent
//
// Use errors.As to inspect the details:
//
//	var apiErr *ethproofs.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// Handle auth failure
//	}
package ethproofs
