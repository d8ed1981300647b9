// Package middleware provides reusable pipeline stages for bpipe servers.
package middleware
