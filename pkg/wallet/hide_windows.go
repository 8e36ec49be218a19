//go:build windows

package wallet

import "syscall"

// hideFile sets the hidden attribute on a saved wallet file (Windows only).
func hideFile(filename string) {
	filenamePtr, err := syscall.UTF16PtrFromString(filename)
	if err == nil {
		syscall.SetFileAttributes(filenamePtr, syscall.FILE_ATTRIBUTE_HIDDEN)
	}
}
