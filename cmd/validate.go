package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"firestige.xyz/bitpacket/internal/config"
	"firestige.xyz/bitpacket/internal/core/bitstream"
	"firestige.xyz/bitpacket/internal/core/eval"
	"firestige.xyz/bitpacket/internal/log"
)

var validateCmd = &cobra.Command{
	Use:   "validate [hex]",
	Short: "Check that a transmission decodes and its operators have valid operand counts",
	Long: `Decode a transmission and check every operator's operand count without
evaluating it. Comparisons need exactly two operands, other operators at
least one.

Examples:
  bitpacket validate 9C0141080250320F1802104A08
  bitpacket validate -f input.txt`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		buf, err := readStream(validateInputFile, args, cmd.InOrStdin())
		if err != nil {
			exitWithError("failed to read transmission", err)
		}
		cfg, logger, err := current()
		if err != nil {
			exitWithError("failed to load config", err)
		}
		if err := runValidate(cfg, logger, buf, cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(os.Stderr, "INVALID: %v\n", err)
			os.Exit(1)
		}
	},
}

var validateInputFile string

func init() {
	validateCmd.Flags().StringVarP(&validateInputFile, "file", "f", "",
		"file holding the hex transmission")
}

func runValidate(cfg *config.Config, logger log.Logger, buf *bitstream.Buffer, w io.Writer) error {
	p, err := decodeStream(cfg, logger, buf)
	if err != nil {
		return err
	}
	if err := eval.Validate(p); err != nil {
		return err
	}

	s := eval.Summarize(p)
	fmt.Fprintf(w, "VALID: %d packet(s), %d literal(s), %d operator(s), depth %d, %d bits\n",
		s.Packets, s.Literals, s.Operators, s.MaxDepth, p.BitLen)
	return nil
}
