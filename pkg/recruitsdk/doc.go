/*
Package recruitsdk is the HTTP gateway to the Dental Recruit REST API.

# Overview

Every backend call goes through one Client. The Client owns the base URL, the
transport timeout (10 seconds unless overridden), bearer token injection and
error classification, so callers only deal with typed results:

	client := recruitsdk.NewClient("http://localhost:5000/api",
		recruitsdk.WithTokenSource(sessions),
		recruitsdk.WithLogger(logger),
	)

	jobs, err := client.ListJobs(ctx, recruitsdk.JobFilter{City: "Pune"})

# Bearer Tokens

The token is read from the TokenSource at dispatch time, never captured when a
caller is constructed. A request issued after logout therefore carries no
Authorization header even if the code that issued it was set up while a
session was active. WithToken and WithoutAuth override the source per call.

# Authorization Expiry

A 401 response is delivered to every OnAuthExpired subscriber before the
caller sees the error. The Client itself never clears state or navigates;
a single coordinator subscribes and does both. The caller still receives an
*AuthExpiredError.

# Error Handling

Failures are classified and logged, never retried:

  - *ServerError: the backend answered with a non-2xx status. Message comes
    from the body's "error" or "message" field, else a generic fallback.
  - *AuthExpiredError: a 401. Unwraps to *ServerError.
  - *NetworkError: no response (refused, DNS, timeout). Hint explains that
    the backend may be unreachable.
  - *ClientError: the request could not be built, a body failed validation,
    or a response could not be decoded.

Use Message(err) for banner text and IsAuthExpired(err) to branch on 401.

# Thread Safety

A Client is safe for concurrent use.
*/
package recruitsdk
