package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type DiskSink struct{ dir string }

func NewDiskSink(dir string) *DiskSink { return &DiskSink{dir: dir} }

func (d *DiskSink) Kind() string { return "disk" }

func (d *DiskSink) Save(ctx context.Context, name string, r io.Reader, _ int64, _ string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	dst := filepath.Join(d.dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := ctx.Err(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
