// Package conoha defines the public types of the ConoHa API client: configuration,
// service client interfaces, query parameters and the error taxonomy.
//
// Build a client with the conohaclient package:
//
//	client, err := conohaclient.New(ctx, &conoha.Config{
//	  Region:   "tyo1",
//	  TenantID: "487727e3921d44e3bfe7ebb337bf085e",
//	  Token:    "0123456789abcdef",
//	})
//	if err != nil { log.Fatal(err) }
//
//	invoices, err := client.Account().ListBillingInvoices(ctx, &conoha.ListOptions{Limit: 5})
//
// # Errors
//
// Every failed call returns an error wrapping *Error. Its Kind is one of
// ErrorKindTransport (no response), ErrorKindHTTPStatus (non-2xx response, status and body
// kept) or ErrorKindDecoding (body was not JSON). Use errors.Is with ErrTransport,
// ErrHTTPStatus or ErrDecoding, or AsError to inspect the details.
//
// # Test mode
//
// With Config.TestMode set, every request is answered locally with a fixed 200 response
// whose body is
//
//	{"checkKey": "checkValue", "access": {"token": {"id": "sample00d88246078f2bexample788f7"}}}
//
// TestModeFromEnv reads the IS_TEST environment variable for callers that want the
// environment to decide.
package conoha
