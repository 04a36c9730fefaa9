// Package server implements the HTTP front controller for simph
// applications.
//
// The Handler resolves every incoming request through a
// middleware.Resolver, then either issues a canonicalization redirect,
// renders the resolved page through a PageSource, or writes the mapped
// error status. Pages can live on disk (DiskPages) or in an S3 bucket
// (S3Pages).
//
// In development mode a ReloadServer can be mounted to push live-reload
// messages to connected browsers over WebSocket.
package server
