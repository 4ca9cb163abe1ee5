// Package logger provides component-scoped structured logging for ytextract.
//
// Entries are written through zerolog. Each component can be switched on or
// off independently; by default only ComponentApp is enabled so the library
// stays quiet when embedded.
//
// Usage:
//
//	log := logger.WithComponent(logger.ComponentCipher)
//	log.Debug("decipher function located", map[string]interface{}{
//		"asset": "/s/player/abc/base.js",
//		"name":  "Xy",
//	})
//
//	cfg := logger.EnvironmentConfig()
//	logger.SetGlobalLogger(logger.New(cfg))
//
// Components:
//   - ComponentApp: entry point and CLI
//   - ComponentClient: page and asset fetches
//   - ComponentPlayer: player response parsing
//   - ComponentFormat: catalog filtering and selection
//   - ComponentCipher: decipher function synthesis
//   - ComponentCache: decipher cache reads and writes
//   - ComponentBridge: script evaluation round-trips
package logger
