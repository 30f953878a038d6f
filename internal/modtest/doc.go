// SPDX-License-Identifier: EPL-2.0

// Package modtest builds in-memory module images and provides PatchLoader
// doubles for tests.
//
// Builders write what they are told, including inconsistent counts, so
// tests can produce malformed files; byte offsets of interesting fields
// are exported for tests that patch the image afterwards.
package modtest
