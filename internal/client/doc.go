// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the session store, its storage and auth backend, the terminal UI
// and background workers into a single process lifecycle.
package client
