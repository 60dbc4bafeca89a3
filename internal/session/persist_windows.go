// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows

package session

// verifyOwner is a no-op on Windows, where file modes do not carry the
// ownership semantics the Unix check relies on.
func verifyOwner(path string) error {
	return nil
}
