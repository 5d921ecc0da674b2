// Package httputil provides shared HTTP response helpers for handlers.
//
// API handlers use these instead of writing raw http.ResponseWriter calls so
// that every JSON body and error envelope has the same shape.
package httputil
