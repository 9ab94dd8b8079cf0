// Package lexstash exposes module-level metadata.
package lexstash

// Version is the lexstash release version.
const Version = "0.1.0"
