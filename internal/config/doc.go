// Package config loads and persists editor settings. A Config value is an
// immutable snapshot: mutation goes through Update, which writes the change
// to disk and returns a fresh snapshot.
package config
