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

var treeCmd = &cobra.Command{
	Use:   "tree [hex]",
	Short: "Print the decoded packet tree",
	Long: `Print the decoded packet tree as YAML, JSON or an infix expression.

Examples:
  bitpacket tree 38006F45291200
  bitpacket tree -f input.txt --output json
  bitpacket tree 9C0141080250320F1802104A08 --output expr`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		buf, err := readStream(treeInputFile, args, cmd.InOrStdin())
		if err != nil {
			exitWithError("failed to read transmission", err)
		}
		cfg, logger, err := current()
		if err != nil {
			exitWithError("failed to load config", err)
		}
		if err := runTree(cfg, logger, buf, treeOutput, cmd.OutOrStdout()); err != nil {
			exitWithError("tree failed", err)
		}
	},
}

var (
	treeInputFile string
	treeOutput    string
)

func init() {
	treeCmd.Flags().StringVarP(&treeInputFile, "file", "f", "",
		"file holding the hex transmission")
	treeCmd.Flags().StringVarP(&treeOutput, "output", "o", "yaml",
		"output format: yaml, json, expr")
}

func runTree(cfg *config.Config, logger log.Logger, buf *bitstream.Buffer, format string, w io.Writer) error {
	p, err := decodeStream(cfg, logger, buf)
	if err != nil {
		return err
	}
	if format == "expr" {
		_, err := fmt.Fprintln(w, eval.Expression(p))
		return err
	}
	return writeEncoded(w, format, models.NewPacketView(p))
}
