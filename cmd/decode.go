package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"firestige.xyz/bitpacket/internal/config"
	"firestige.xyz/bitpacket/internal/core/bitstream"
	"firestige.xyz/bitpacket/internal/core/eval"
	"firestige.xyz/bitpacket/internal/log"
	"firestige.xyz/bitpacket/pkg/models"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [hex]",
	Short: "Decode a transmission and print its version sum and value",
	Long: `Decode a transmission and print the sum of all packet versions and the
value of the expression it encodes.

Output format defaults to output.format from the config file.

Examples:
  bitpacket decode 9C0141080250320F1802104A08
  bitpacket decode -f input.txt --output json
  bitpacket decode -f input.txt --expect-sum 16`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		buf, err := readStream(decodeInputFile, args, cmd.InOrStdin())
		if err != nil {
			exitWithError("failed to read transmission", err)
		}
		cfg, logger, err := current()
		if err != nil {
			exitWithError("failed to load config", err)
		}

		opts := decodeOptions{format: decodeOutput}
		if cmd.Flags().Changed("expect-sum") {
			opts.expectSum = &decodeExpectSum
		}
		if cmd.Flags().Changed("expect-value") {
			opts.expectValue = &decodeExpectValue
		}
		if err := runDecode(cfg, logger, buf, opts, cmd.OutOrStdout()); err != nil {
			exitWithError("decode failed", err)
		}
	},
}

var (
	decodeInputFile   string
	decodeOutput      string
	decodeExpectSum   uint64
	decodeExpectValue uint64
)

func init() {
	decodeCmd.Flags().StringVarP(&decodeInputFile, "file", "f", "",
		"file holding the hex transmission")
	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "",
		"output format: text, json, yaml (default from config)")
	decodeCmd.Flags().Uint64Var(&decodeExpectSum, "expect-sum", 0,
		"fail unless the version sum equals this")
	decodeCmd.Flags().Uint64Var(&decodeExpectValue, "expect-value", 0,
		"fail unless the value equals this")
}

type decodeOptions struct {
	format      string
	expectSum   *uint64
	expectValue *uint64
}

func runDecode(cfg *config.Config, logger log.Logger, buf *bitstream.Buffer, opts decodeOptions, w io.Writer) error {
	p, err := decodeStream(cfg, logger, buf)
	if err != nil {
		return err
	}
	if cfg.Decoder.Strict {
		if err := eval.Validate(p); err != nil {
			return err
		}
	}

	summary := eval.Summarize(p)
	result := models.Result{
		VersionSum: eval.VersionSum(p),
		Value:      eval.Value(p),
		Packets:    summary.Packets,
		MaxDepth:   summary.MaxDepth,
		BitLen:     p.BitLen,
		Padding:    buf.Len(),
	}
	logger.WithFields(map[string]interface{}{
		"version_sum": result.VersionSum,
		"value":       result.Value,
		"packets":     result.Packets,
	}).Info("transmission decoded")

	format := opts.format
	if format == "" {
		format = cfg.Output.Format
	}
	if format == "text" {
		fmt.Fprintf(w, "version sum: %d\n", result.VersionSum)
		fmt.Fprintf(w, "value:       %d\n", result.Value)
	} else if err := writeEncoded(w, format, result); err != nil {
		return err
	}

	if opts.expectSum != nil && *opts.expectSum != result.VersionSum {
		return fmt.Errorf("version sum %d, expected %d", result.VersionSum, *opts.expectSum)
	}
	if opts.expectValue != nil && *opts.expectValue != result.Value {
		return fmt.Errorf("value %d, expected %d", result.Value, *opts.expectValue)
	}
	return nil
}
