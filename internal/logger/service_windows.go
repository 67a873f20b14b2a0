//go:build windows

package logger

import "golang.org/x/sys/windows/svc"

func runningAsService() bool {
	isService, err := svc.IsWindowsService()
	if err != nil {
		return false
	}

	return isService
}
