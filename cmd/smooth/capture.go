package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/pfcm/shifty"
	"github.com/pfcm/shifty/internal/buffer"
	shiftyio "github.com/pfcm/shifty/io"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "show the smoothed level of the default audio input",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		filters, err := c.Filters()
		if err != nil {
			return err
		}
		// Smoothing the rectified signal gives an envelope follower.
		t := shifty.Serially(shifty.Rectify{N: c.Channels}, filters)
		levels := make([]*buffer.Ring, c.Channels)
		for i := range levels {
			levels[i] = buffer.NewRing(max(1, int(c.SampleRate)/10))
		}
		log.Infof("capturing %d channels at %dHz through %v", c.Channels, c.SampleRate, t)

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			cfg := shiftyio.CaptureConfig{SampleRate: c.SampleRate, Channels: c.Channels}
			return shiftyio.CaptureWithDefaults(ctx, t, cfg, func(out [][]int16) {
				for i, ch := range out {
					levels[i].Write(ch)
				}
			})
		})
		g.Go(func() error {
			return showLevels(ctx.Done(), cmd.OutOrStdout(), levels, c.Interval)
		})
		return g.Wait()
	},
}

// showLevels prints the most recent level of each channel every interval until
// done is closed.
func showLevels(done <-chan struct{}, w io.Writer, levels []*buffer.Ring, interval time.Duration) error {
	t0 := time.Now()
	tick := time.NewTicker(interval)
	defer tick.Stop()
	last := make([]int16, 1)
	for {
		select {
		case <-done:
			fmt.Fprintln(w)
			return nil
		case <-tick.C:
			var s []string
			for _, r := range levels {
				l := int16(0)
				if r.Latest(last) == 1 {
					l = last[0]
				}
				s = append(s, meter(l, 20))
			}
			fmt.Fprintf(w, "\r%8.2fs %s", time.Since(t0).Seconds(), strings.Join(s, " "))
		}
	}
}

// meter draws a level from 0 to 32767 as a bar width characters wide.
func meter(level int16, width int) string {
	n := int(max(level, 0)) * width / 32767
	return "[" + strings.Repeat("#", n) + strings.Repeat(" ", width-n) + "]"
}
