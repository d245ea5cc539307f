// Package authsdk is a small Go client for the jobdesk auth service, plus
// the request/response types and error envelope shared with the server.
//
// The client keeps its tokens in a cookie jar and echoes the CSRF
// double-submit header automatically, so it behaves like a browser session:
//
//	client, _ := authsdk.NewClient("http://localhost:8080")
//	client.FetchCSRF(ctx)
//	login, err := client.Login(ctx, "user@example.com", "password")
//	// feed login.OtpauthURL into an authenticator, then:
//	_, err = client.Verify2FA(ctx, code)
package authsdk
