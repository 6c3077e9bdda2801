package main

import (
	"fmt"
	"image/png"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/sigpad"
)

var (
	renderWidth  float64
	renderHeight float64
	renderRatio  float64
	renderOut    string
	renderSeed   int64
	renderColor  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a synthetic signature to a PNG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		canvas := sigpad.NewImageCanvas(int(renderWidth), int(renderHeight))
		canvas.SetLogicalSize(renderWidth, renderHeight)

		pad, err := sigpad.NewPad(canvas,
			sigpad.WithPenColor(sigpad.ParseHex(renderColor)),
			sigpad.WithBackgroundColor(sigpad.White),
			sigpad.WithThrottle(0), // draw every synthetic sample
		)
		if err != nil {
			return err
		}

		rescaler := sigpad.NewRescaler(canvas, pad, func() float64 { return renderRatio })
		if err := rescaler.Rescale(); err != nil {
			return err
		}

		scrawl(pad, renderWidth, renderHeight, renderSeed)

		f, err := os.Create(renderOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := png.Encode(f, canvas.Snapshot()); err != nil {
			return fmt.Errorf("encode %s: %w", renderOut, err)
		}

		w, h := canvas.Size()
		fmt.Printf("wrote %s (%dx%d, ratio %g)\n", renderOut, w, h, renderRatio)
		return nil
	},
}

// scrawl drives the pad through a few loops of a wandering damped wave,
// which reads surprisingly well as a fake signature.
func scrawl(pad *sigpad.Pad, width, height float64, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	baseline := height * 0.55
	amp := height * 0.28

	pad.PointerDown(sigpad.Pt(width*0.08, baseline))
	steps := 160
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		x := width*0.08 + t*width*0.84
		y := baseline +
			amp*math.Sin(t*14)*math.Exp(-t*1.2) +
			amp*0.2*math.Sin(t*53+float64(seed)) +
			rng.Float64()*1.5 - 0.75
		pad.PointerMove(sigpad.Pt(x, y))
		// Real pens do not sample uniformly in time.
		time.Sleep(time.Millisecond)
	}
	pad.PointerUp(sigpad.Pt(width*0.92, baseline-amp*0.1))

	// Dot the signature.
	dot := sigpad.Pt(width*0.94, baseline)
	pad.PointerDown(dot)
	pad.PointerUp(dot)
}

func init() {
	renderCmd.Flags().Float64Var(&renderWidth, "width", 600, "logical canvas width")
	renderCmd.Flags().Float64Var(&renderHeight, "height", 240, "logical canvas height")
	renderCmd.Flags().Float64Var(&renderRatio, "ratio", 2, "device pixel ratio")
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "signature.png", "output file")
	renderCmd.Flags().Int64Var(&renderSeed, "seed", 42, "scrawl randomness seed")
	renderCmd.Flags().StringVar(&renderColor, "color", "#1a237e", "pen color")
	rootCmd.AddCommand(renderCmd)
}
