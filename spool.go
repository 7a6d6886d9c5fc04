package spooled

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// Spool copies r into a new TempFile created from config and rewinds it.
// The context is checked between chunks of config.CopyBufferSize bytes.
// On error the TempFile is closed and nil is returned.
func Spool(ctx context.Context, r io.Reader, config *Config) (*TempFile, error) {
	f := NewWithConfig(config)
	if err := f.fill(ctx, r); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func (f *TempFile) fill(ctx context.Context, r io.Reader) error {
	buf := make([]byte, f.config.CopyBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// SpoolAll spools every reader into its own TempFile, running at most limit
// copies at once (limit <= 0 means no limit). The result is in the same order
// as readers. If any copy fails the others are cancelled, every TempFile
// created so far is closed, and the first error is returned.
func SpoolAll(ctx context.Context, readers []io.Reader, config *Config, limit int) ([]*TempFile, error) {
	errGroup, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		errGroup.SetLimit(limit)
	}

	files := make([]*TempFile, len(readers))
	for i, r := range readers {
		i, r := i, r
		errGroup.Go(func() error {
			f, err := Spool(ctx, r, config)
			if err != nil {
				return fmt.Errorf("spooling reader %d: %w", i, err)
			}
			files[i] = f
			return nil
		})
	}

	if err := errGroup.Wait(); err != nil {
		for _, f := range files {
			if f != nil {
				_ = f.Close()
			}
		}
		return nil, err
	}
	return files, nil
}
