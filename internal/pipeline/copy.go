package pipeline

import (
	"fmt"
	"io"
	"os"
)

// copyFile copies src to dst, truncating any existing dst, and carries over
// the permission bits and the access and modification times as they were
// before the read. It returns the bytes written.
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%s is not a regular file", src)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, err
	}
	if err := out.Close(); err != nil {
		return n, err
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return n, err
	}
	// A zero access time (platform without atime) leaves it untouched.
	if err := os.Chtimes(dst, accessTime(info), info.ModTime()); err != nil {
		return n, err
	}
	return n, nil
}
