// Package demo is a small application built on bpipe and bapp. It serves a basic-auth
// protected welcome page, a public page, an echo of posted bodies and of route captures,
// and a list of people kept in DynamoDB.
package demo
