// Package client contains the backend API client of casekeeper and the
// bootstrap of the local SQLite store.
//
// # Overview
//
//  1. Client is the API contract used by the services: patient cases, test
//     result submission, category catalogs, image uploads and IAM.
//  2. HTTPClient implements it over REST. Every response is a JSON envelope
//     {success, data, message}; data is decoded into the caller's type.
//     Requests carry a bearer token from a TokenSource and are paced with a
//     token-bucket limiter.
//  3. InitDatabase and RunMigrations open the local database and apply the
//     embedded goose migrations; NewRepositories wires the stores on top.
//
// # Error Handling
//
// Status codes map to sentinels matched with errors.Is:
//
//	401        ErrUnauthorized (the token source is told to drop its token)
//	403        ErrForbidden
//	404        ErrNotFound
//	5xx, I/O   ErrUnavailable
//
// Other 4xx responses and envelopes with success=false surface as *APIError.
// Nothing is retried; retries are left to the user.
package client
