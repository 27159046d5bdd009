// Package store caches solve results on disk so repeated runs over the same
// maze skip the search.
//
// Records are msgpack-encoded and kept in BadgerDB under the key
// "solve:<sha256>", where the digest covers the maze text and its exit set.
// A Cache can run purely in memory for tests.
package store
