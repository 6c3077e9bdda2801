package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/gogpu/sigpad"
	"github.com/gogpu/sigpad/tcellhost"
)

var drawOut string

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Capture a signature interactively in the terminal",
	Long: `Capture a signature by drawing with the mouse.

Keys: c clears, u undoes the last stroke, s saves a PNG, Esc quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()
		screen.EnableMouse()

		host := tcellhost.New(screen)

		w, h := host.Size()
		canvas := sigpad.NewImageCanvas(int(w), int(h))

		component := sigpad.NewComponent(sigpad.Config{
			RedrawOnResize: true,
			PadOptions: []sigpad.Option{
				sigpad.WithPenColor(sigpad.White),
				sigpad.WithBackgroundColor(sigpad.Black),
				sigpad.WithWidthRange(0.5, 1.5),
			},
		})
		if err := component.Mount(canvas, host); err != nil {
			return err
		}
		defer component.Unmount()

		host.SetPointerHandler(func(kind tcellhost.PointerKind, pt sigpad.Point) {
			switch kind {
			case tcellhost.PointerDown:
				component.PointerDown(pt)
			case tcellhost.PointerMove:
				component.PointerMove(pt)
			case tcellhost.PointerUp:
				component.PointerUp(pt)
			}
		})

		pad := component.Pad()

		saved := ""
		for {
			host.Blit(pad.Snapshot())
			ev := screen.PollEvent()
			if ev == nil {
				break
			}
			if key, ok := ev.(*tcell.EventKey); ok && key.Key() == tcell.KeyRune {
				switch key.Rune() {
				case 'c':
					component.Clear()
				case 'u':
					component.Undo()
				case 's':
					saved = drawOut
					if err := savePNG(pad, saved); err != nil {
						return err
					}
				}
				continue
			}
			if !host.HandleEvent(ev) {
				break
			}
		}

		if saved != "" {
			fmt.Printf("wrote %s\n", saved)
		}
		return nil
	},
}

// savePNG writes the pad's current canvas contents to path.
func savePNG(pad *sigpad.Pad, path string) error {
	return sigpad.FromImage(pad.Snapshot()).SavePNG(path)
}

func init() {
	drawCmd.Flags().StringVarP(&drawOut, "output", "o", "signature.png", "file written by the s key")
	rootCmd.AddCommand(drawCmd)
}
