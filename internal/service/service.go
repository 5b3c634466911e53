// Package service contains the business logic.
//
// It sits behind the handler layer. It receives validated data
// from the handler and performs the actual computation, free of
// any HTTP concerns.
package service
