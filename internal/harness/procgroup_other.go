//go:build !unix

package harness

import "os/exec"

// setProcessGroup is a no-op; WaitDelay still bounds the wait for pipes held
// by orphaned children.
func setProcessGroup(cmd *exec.Cmd) {}
