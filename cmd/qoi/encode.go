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

func newEncodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <in.png> <out.qoi>",
		Short: "Decode a PNG file and write it out as QOI",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(args[0], args[1])
		},
	}
}

func runEncode(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return readError(errors.Wrapf(err, "opening %s", inPath))
	}
	defer in.Close()

	src, err := png.Decode(in)
	if err != nil {
		return readError(errors.Wrap(err, "decoding png"))
	}
	img := qoi.FromImage(src)
	log.Debug().Uint32("width", img.Header.Width).Uint32("height", img.Header.Height).Msg("converted png to pixel buffer")

	out, err := os.Create(outPath)
	if err != nil {
		return writeError(errors.Wrapf(err, "creating %s", outPath))
	}
	defer out.Close()

	if err := qoi.Encode(qoi.NewSink(out), img.Header, img.Pix); err != nil {
		return writeError(errors.Wrap(err, "encoding qoi stream"))
	}

	log.Info().Str("input", inPath).Str("output", outPath).Msg("encode complete")
	fmt.Fprintf(os.Stdout, "wrote %s\n", outPath)
	return nil
}
