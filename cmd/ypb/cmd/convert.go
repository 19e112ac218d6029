package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ypbank/finparser/pkg/convert"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a transaction file between formats",
	Long: `Convert a transaction file from one format to another.

Records are converted one at a time in stream order; the first bad record
aborts the conversion and nothing already written is rolled back.

Example:
  ypb convert --input-file txs.bin --input-format bin --output-format csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, _ := cmd.Flags().GetString("input-file")
		inputFormat, _ := cmd.Flags().GetString("input-format")
		outputFile, _ := cmd.Flags().GetString("output-file")
		outputFormat, _ := cmd.Flags().GetString("output-format")

		if inputFormat == "" {
			inputFormat = cfg.Convert.InputFormat
		}
		if outputFormat == "" {
			outputFormat = cfg.Convert.OutputFormat
		}

		src, err := os.Open(inputFile)
		if err != nil {
			return errors.Wrap(err, "opening input file")
		}
		defer src.Close()

		var dst io.Writer = os.Stdout
		if outputFile != "" {
			out, err := os.Create(outputFile)
			if err != nil {
				return errors.Wrap(err, "creating output file")
			}
			defer out.Close()
			dst = out
		}

		count, err := convert.Convert(dst, outputFormat, src, inputFormat)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"records": count,
			"from":    inputFormat,
			"to":      outputFormat,
		}).Info("conversion complete")
		return nil
	},
}

func init() {
	convertCmd.Flags().String("input-file", "", "Path to the input file")
	convertCmd.Flags().String("input-format", "", "Input format: bin | csv | text")
	convertCmd.Flags().String("output-file", "", "Path to the output file (default stdout)")
	convertCmd.Flags().String("output-format", "", "Output format: bin | csv | text")
	_ = convertCmd.MarkFlagRequired("input-file")
	rootCmd.AddCommand(convertCmd)
}
