/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eslsoft/chindospeak/internal/adapter/audio"
	"github.com/eslsoft/chindospeak/internal/adapter/terminal"
	"github.com/eslsoft/chindospeak/internal/app"
	"github.com/eslsoft/chindospeak/internal/usecase"
)

// driveCmd represents the drive command
var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Run a hands-free spoken session",
	Long: `drive speaks every prompt aloud and grades the captured answer, so a
session can run without looking at the screen. A failed capture is retried
twice with a spoken re-prompt, then the card is skipped. Ctrl+C stops the
session; grades persisted so far stand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		container, cleanup, err := app.Initialize()
		if err != nil {
			return err
		}
		defer cleanup()

		cfg, err := sessionConfigFromFlags(ctx, cmd, container)
		if err != nil {
			return err
		}
		cfg.Practice, _ = cmd.Flags().GetBool("practice")

		var speaker usecase.Speaker
		mute, _ := cmd.Flags().GetBool("mute")
		if mute || container.Config.Speech.Mute {
			speaker = terminal.NewEchoSpeaker(cmd.OutOrStdout())
		} else {
			speaker, err = audio.NewGoogleSpeaker(
				container.Config.Speech.CacheDir,
				container.Config.Speech.Player,
				container.Logger,
			)
			if err != nil {
				return err
			}
		}
		recognizer := terminal.NewRecognizer(os.Stdin, cmd.OutOrStdout())

		session, err := container.Sessions.Start(ctx, cfg)
		if err != nil {
			return err
		}

		totals, err := session.Run(ctx, speaker, recognizer)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		printTotals(cmd, totals)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(driveCmd)

	addSessionFlags(driveCmd)
	driveCmd.Flags().Bool("practice", false, "run without persisting review outcomes")
	driveCmd.Flags().Bool("mute", false, "print prompts instead of playing audio")
}
