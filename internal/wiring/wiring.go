// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/Jarcho/cargo-ci-precache/internal/adapters/cargo"
	_ "github.com/Jarcho/cargo-ci-precache/internal/adapters/config"
	_ "github.com/Jarcho/cargo-ci-precache/internal/adapters/logger"
	// Register app and engine nodes.
	_ "github.com/Jarcho/cargo-ci-precache/internal/app"
	_ "github.com/Jarcho/cargo-ci-precache/internal/engine/sweep"
)
