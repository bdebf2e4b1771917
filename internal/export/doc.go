// Package export writes extraction results as delimited tables and describes each
// run in a manifest.
//
// Table layout is fixed: the header row is always written, columns never move, and
// absent values are empty fields. Tables are written to a temporary file beside the
// target and renamed into place, so a failed run leaves any previous table intact.
//
// The manifest records row counts and SHA-256 digests of the written tables. With a
// signing key it is also issued as an HS256 JWT that consumers can check with
// VerifyManifest.
package export
