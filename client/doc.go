// Package client is the HTTP transport for the CheddarGetter XML API.
//
// # Overview
//
// The package provides:
//  1. Config, validated with go-playground/validator, holding the base URL,
//     Basic credentials, the default product code and the request timeout.
//  2. Client.Do, which turns a Request (path, id-or-code, item code, fields)
//     into a form-encoded POST to <base>/xml/<path>/... and returns the root
//     element of the XML reply as an *etree.Element.
//  3. Name helpers (ToCamelCase, ToSnakeCase) shared with the models package,
//     plus IsUUID, which decides whether a reference is routed as /id/ or /code/.
//  4. Optional Prometheus collectors (Metrics) for request counts and latency.
//
// # Error Handling
//
// Every failure is an *Error whose Kind is one of the sentinels, so callers
// match with errors.Is: ErrNotFound, ErrAuthorizationRequired, ErrForbidden,
// ErrBadRequest, ErrGatewayFailure, ErrGatewayConnection,
// ErrUnexpectedResponse, ErrTimeout, ErrConnection. Mistakes detected before
// anything is sent wrap ErrInvalidArgument or ErrConfiguration.
//
// # Concurrency & Contexts
//
// A Client holds no per-request state and is safe for concurrent use. Do
// honors ctx cancellation on top of Config.Timeout.
package client
