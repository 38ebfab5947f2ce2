package utils

import (
	"fmt"
	"io"
	"os"
)

const (
	// PermissionsFileDefault is the default permission set for regular files.
	PermissionsFileDefault = os.FileMode(0o644)
	// PermissionsFileSecret is the permission set for private key material.
	PermissionsFileSecret = os.FileMode(0o600)
	// PermissionsDirDefault is the default permission set for directories.
	PermissionsDirDefault = os.FileMode(0o755)
)

// FileExists returns true if a file referenced by filename exists
// and is not a directory.
func FileExists(filename string) bool {
	f, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return !f.IsDir()
}

// CopyFile copies a file from src to dst with a given mode.
func CopyFile(src, dst string, mode os.FileMode) (err error) {
	sfi, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !sfi.Mode().IsRegular() {
		// cannot copy non-regular files (e.g., directories, symlinks, devices, etc.)
		return fmt.Errorf("CopyFile: non-regular source file %s (%q)", sfi.Name(), sfi.Mode().String())
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() {
		cerr := out.Close()
		if err == nil {
			err = cerr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}

	return out.Sync()
}

// CreateFile writes content to a file by path `file` with the given mode.
func CreateFile(file, content string, mode os.FileMode) error {
	return os.WriteFile(file, []byte(content), mode)
}

// CreateDirectory creates a directory by a path with a mode/permission specified by perm.
// If the directory exists, the function does not do anything.
func CreateDirectory(path string, perm os.FileMode) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, perm)
	}
	return nil
}

// ReadFileContent reads and returns the content of a file.
func ReadFileContent(file string) ([]byte, error) {
	// check file exists
	if !FileExists(file) {
		return nil, fmt.Errorf("file %s does not exist", file)
	}

	return os.ReadFile(file)
}
