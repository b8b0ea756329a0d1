package cmd

import (
	"fmt"
	"io"
	"os"

	"firestige.xyz/bitpacket/internal/config"
	"firestige.xyz/bitpacket/internal/core"
	"firestige.xyz/bitpacket/internal/core/bitstream"
	"firestige.xyz/bitpacket/internal/core/decoder"
	"firestige.xyz/bitpacket/internal/core/hexload"
	"firestige.xyz/bitpacket/internal/log"
)

// readStream loads the transmission from file, the positional argument or
// stdin, in that order of preference.
func readStream(file string, args []string, stdin io.Reader) (*bitstream.Buffer, error) {
	switch {
	case file != "":
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file, err)
		}
		defer f.Close()
		return hexload.Load(f)
	case len(args) > 0:
		return hexload.Parse(args[0])
	default:
		return hexload.Load(stdin)
	}
}

// decodeStream decodes the outermost packet of buf with the decoder limits
// from cfg.
func decodeStream(cfg *config.Config, logger log.Logger, buf *bitstream.Buffer) (*core.Packet, error) {
	d := decoder.NewStandardDecoder(decoder.Config{
		MaxDepth: cfg.Decoder.MaxDepth,
		Logger:   logger,
	})
	return d.Decode(buf)
}

// current returns the configuration and logger set up by the root command,
// falling back to defaults when a command runs without it.
func current() (*config.Config, log.Logger, error) {
	if appConfig != nil && runLogger != nil {
		return appConfig, runLogger, nil
	}
	cfg, err := config.Default()
	if err != nil {
		return nil, nil, err
	}
	return cfg, log.GetLogger(), nil
}
