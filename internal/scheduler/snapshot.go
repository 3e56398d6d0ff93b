package scheduler

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Snapshot digests the shape of a corpus tree: every visible path, plus size
// and modification time for files. File contents are not read, so a check costs
// one stat per entry.
func Snapshot(ctx context.Context, fsys fs.FS) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}

	var buf [8]byte
	err = fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if name != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		h.Write([]byte(name))
		h.Write([]byte{0})
		// Directory mtimes move whenever hidden entries churn; their
		// children already cover real changes.
		if d.IsDir() {
			return nil
		}

		info, err := fs.Stat(fsys, name)
		if err != nil {
			return err
		}
		binary.BigEndian.PutUint64(buf[:], uint64(info.Size()))
		h.Write(buf[:])
		binary.BigEndian.PutUint64(buf[:], uint64(info.ModTime().UnixNano()))
		h.Write(buf[:])
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("snapshot corpus: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
