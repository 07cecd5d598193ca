// Package storage provides the durable key-value stores the famtask engine
// persists its session under: an in-memory store for tests and ephemeral
// hosts, a single-file JSON store for device-local persistence, and a
// Redis-backed store for headless or shared-device deployments.
//
// All implementations satisfy [Store] and report absence as [ErrNotFound]
// and backend failures wrapped in [ErrUnavailable]. None of them interpret
// values; the engine owns key naming and encoding.
package storage
