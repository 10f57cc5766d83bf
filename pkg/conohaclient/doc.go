// Package conohaclient is the entry point for constructing a ConoHa API client that
// implements the conoha.Client interface.
//
// It normalizes configuration and builds the HTTP executor on top of the interfaces and
// types defined in the conoha package. Token acquisition is out of scope: pass a token and
// tenant ID you already have.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/keika299/conoha/pkg/conoha"
//	  "github.com/keika299/conoha/pkg/conohaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := conohaclient.New(ctx, &conoha.Config{
//	    Region:   "tyo1",
//	    TenantID: "487727e3921d44e3bfe7ebb337bf085e",
//	    Token:    "0123456789abcdef",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  invoices, err := cli.Account().ListBillingInvoices(ctx, &conoha.ListOptions{Limit: 10})
//	  if err != nil { log.Fatal(err) }
//	  _ = invoices
//	}
//
// # Endpoints
//
// Config.AccountEndpoint wins when set. Otherwise the endpoint is derived from
// Config.Region as https://account.<region>.conoha.io. A trailing slash is trimmed and
// https:// is added when no scheme is given.
//
// # Test mode
//
// With Config.TestMode every request is answered with a fixed 200 response and nothing is
// sent over the network. NewFromEnv turns test mode on when IS_TEST is set to anything
// other than "", "0" or "false".
package conohaclient
