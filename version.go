// Package spawnmocha holds build-time metadata for the spawn-mocha CLI.
package spawnmocha

// Version is overwritten at build time using `-ldflags "-X github.com/rwx-research/spawn-mocha.Version=..."`
var Version = "dev"
