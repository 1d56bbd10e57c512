package main

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pfcm/shifty"
	shiftyio "github.com/pfcm/shifty/io"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "smooth a sample stream from a file or stdin, writing to stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		var src io.Reader = cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			src = f
		}
		return smoothStream(cmd.Context(), c, src, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// smoothStream filters src into dst according to c. If c.Stats is set, a
// summary of the input and output goes to statsOut.
func smoothStream(ctx context.Context, c Config, src io.Reader, dst, statsOut io.Writer) error {
	format, err := shiftyio.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	filters, err := c.Filters()
	if err != nil {
		return err
	}
	t := filters
	var in, out *recorder
	if c.Stats {
		in, out = newRecorder("in", c.Channels), newRecorder("out", c.Channels)
		t = shifty.Serially(in, filters, out)
	}
	log.Debugf("running %v", t)

	r, err := shiftyio.NewReader(src, format, c.Channels)
	if err != nil {
		return err
	}
	w, err := shiftyio.NewWriter(dst, format, c.Channels)
	if err != nil {
		return err
	}
	st, err := shiftyio.Stream(ctx, r, w, t, c.Block)
	if err != nil {
		return fmt.Errorf("after %d frames: %w", st.Frames, err)
	}
	log.WithFields(log.Fields{
		"frames": st.Frames,
		"blocks": st.Blocks,
	}).Debug("stream done")

	if c.Stats {
		return report(statsOut, in, out)
	}
	return nil
}
