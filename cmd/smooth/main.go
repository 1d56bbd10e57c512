// smooth runs fixed-point EMA filters over sample streams: files, stdin or the
// default audio input.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var RootCmd = &cobra.Command{
	Use:   "smooth",
	Short: "fixed-point exponential moving averages over sample streams",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("debug") {
			log.SetLevel(log.DebugLevel)
		}
		if path := viper.GetString("config"); path != "" {
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				return err
			}
			log.Debugf("loaded config from %s", viper.ConfigFileUsed())
		}
		return nil
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.Bool("debug", false, "debug logging")
	flags.String("config", "", "yaml config file")
	addFilterFlags(flags)

	RootCmd.AddCommand(runCmd, captureCmd, configCmd)
}

// addFilterFlags registers every key loadConfig reads.
func addFilterFlags(flags *pflag.FlagSet) {
	flags.String("exp", "4", "smoothing factor: 1, 2, 4, ... 512")
	flags.Uint8("scale", 4, "fractional bits in each filter's accumulator")
	flags.Int("stages", 1, "number of filters in series per channel")
	flags.Int("channels", 1, "number of interleaved channels")
	flags.String("format", "text", "sample format: text or s16le")
	flags.Int("block", 4096, "frames per processing block")
	flags.Uint32("sample-rate", 44100, "capture sample rate")
	flags.Duration("interval", defaultInterval, "how often capture prints levels")
	flags.Bool("stats", false, "print input and output statistics to stderr when done")
}

func main() {
	viper.SetEnvPrefix("smooth")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Fatal("failed to bind persistent flags")
	}

	log.SetFormatter(&prefixed.TextFormatter{})
	log.SetOutput(os.Stderr)

	if err := RootCmd.ExecuteContext(interruptContext()); err != nil {
		log.WithError(err).Fatal("cannot execute command")
	}
}

func interruptContext() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}
