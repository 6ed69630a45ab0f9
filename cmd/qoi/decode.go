package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/qio-project/qoi"
)

func newDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <in.qoi> <out.png>",
		Short: "Decode a QOI file and write it out as PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(args[0], args[1])
		},
	}
}

func runDecode(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return readError(errors.Wrapf(err, "opening %s", inPath))
	}
	defer in.Close()

	img, err := qoi.Decode(qoi.NewSource(in))
	if err != nil {
		return readError(errors.Wrap(err, "decoding qoi stream"))
	}
	log.Debug().Uint32("width", img.Header.Width).Uint32("height", img.Header.Height).Msg("decoded qoi stream")

	out, err := os.Create(outPath)
	if err != nil {
		return writeError(errors.Wrapf(err, "creating %s", outPath))
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return writeError(errors.Wrap(err, "encoding png"))
	}

	log.Info().Str("input", inPath).Str("output", outPath).Msg("decode complete")
	fmt.Fprintf(os.Stdout, "wrote %s\n", outPath)
	return nil
}
