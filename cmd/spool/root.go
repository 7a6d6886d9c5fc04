package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lanrat/spooled"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// persister is implemented by disk backed temp files that can be kept
type persister interface {
	Persist(path string) (*os.File, error)
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:          "spool [file]",
		Short:        "Buffer a body in memory, spilling to a temp file when it gets large",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./spool.yaml or $HOME/.spool/spool.yaml)")
	flags.Int64("max-size", 0, "bytes kept in memory before rolling over to disk")
	flags.String("temp-dir", "", "directory for the temp file")
	flags.Bool("allow-tmpfs", false, "allow memory backed temp directories like /tmp")
	flags.StringP("out", "o", "", "write to this path instead of stdout")
	flags.BoolP("verbose", "v", false, "debug logging")

	for key, name := range map[string]string{
		"max_size":    "max-size",
		"temp_dir":    "temp-dir",
		"allow_tmpfs": "allow-tmpfs",
		"out":         "out",
		"verbose":     "verbose",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
	return cmd
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

func run(cmd *cobra.Command, v *viper.Viper, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), v.GetBool("verbose"))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	in := cmd.InOrStdin()
	source := "stdin"
	if len(args) == 1 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
		source = args[0]
	}

	config := &spooled.Config{
		MaxSize:          v.GetInt64("max_size"),
		TempFilesDir:     v.GetString("temp_dir"),
		PreferDiskBacked: !v.GetBool("allow_tmpfs"),
	}
	logger.Debug().Str("source", source).Int64("max_size", config.MaxSize).Str("temp_dir", config.TempFilesDir).Msg("spooling input")

	f, err := spooled.Spool(ctx, in, config)
	if err != nil {
		return fmt.Errorf("spooling %s: %w", source, err)
	}
	size, err := f.Size()
	if err != nil {
		_ = f.Close()
		return err
	}
	logger.Info().Str("source", source).Int64("size", size).Bool("rolled", f.IsRolled()).Msg("spooled")

	data, err := f.Finalize()
	if err != nil {
		_ = f.Close()
		return err
	}
	defer data.Close()

	out := v.GetString("out")
	if out != "" && data.IsOnDisk() {
		if p, ok := data.File.(persister); ok {
			_, err := p.Persist(out)
			if err == nil {
				logger.Info().Str("path", out).Msg("persisted temp file")
				return nil
			}
			// rename fails across filesystems
			logger.Warn().Err(err).Str("path", out).Msg("persist failed, copying instead")
		}
	}

	rs, err := data.Rewind()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if out != "" {
		file, err := os.Create(out)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	n, err := io.Copy(w, rs)
	if err != nil {
		return err
	}
	logger.Debug().Int64("bytes", n).Msg("copied output")
	return nil
}
