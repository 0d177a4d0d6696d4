// Package errs defines the error taxonomy shared by every component.
//
// Each component absorbs its own failures at its boundary and degrades to an
// empty or absent result; the Kind carried by an Error tells the boundary how.
// Only the HTTP handlers convert what is left into a response envelope, using
// KindOf to pick the status code.
//
// # Kinds
//
//   - KindConfigLoad: settings could not be read; defaults are used.
//   - KindCacheIO: a cache read or write failed; treated as a miss or no-op.
//   - KindRemoteTransport: connect, timeout or body read failure; retried.
//   - KindRemoteStatus: the remote answered with a non-2xx status; not retried.
//   - KindRemoteDecode: the payload was malformed; empty contribution.
//   - KindLocalParse: a local progress file was unreadable; empty record set.
//   - KindNotFound: no data from any source.
//
// # Usage
//
//	if err != nil {
//	    return errs.E(errs.KindRemoteDecode, "decode schema", err)
//	}
//	if errs.Retryable(err) { ... }
package errs
