//go:build !windows

package logger

import (
	"os"
	"syscall"
)

func runningAsService() bool {
	if os.Getppid() == 1 {
		return true
	}

	return syscall.Getpgrp() == syscall.Getpid()
}
