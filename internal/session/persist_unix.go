// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build unix

package session

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// verifyOwner refuses session files owned by another user or readable by
// the group or the world.
func verifyOwner(path string) error {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return err
	}
	if int(st.Uid) != os.Getuid() {
		return fmt.Errorf("file owned by uid %d, not current user", st.Uid)
	}
	if st.Mode&0077 != 0 {
		return fmt.Errorf("file permissions %04o are too open", st.Mode&0777)
	}
	return nil
}
