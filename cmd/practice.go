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
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eslsoft/chindospeak/internal/app"
	"github.com/eslsoft/chindospeak/internal/entity"
	"github.com/eslsoft/chindospeak/internal/usecase"
)

// practiceCmd represents the practice command
var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Drill due cards interactively in the terminal",
	Long: `practice runs a review session over the cards due today for one
skill. With --typed the answer is typed and fuzzy-graded; otherwise the
card flips and you judge yourself. Enter /skip to skip a card and /quit
to stop early; grades persisted before stopping stand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

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
		typed, _ := cmd.Flags().GetBool("typed")

		session, err := container.Sessions.Start(ctx, cfg)
		if err != nil {
			return err
		}
		defer session.Stop()

		in := bufio.NewScanner(os.Stdin)
		for !session.Finished() {
			prompt, dir := session.Prompt()
			if dir == entity.DirectionTranslationToWord {
				cmd.Printf("\nTranslate into %s: %s\n", cfg.Language, prompt)
			} else {
				cmd.Printf("\nTranslate into English: %s\n", prompt)
			}

			if typed {
				if err := gradeTyped(cmd, session, in); err != nil {
					return err
				}
			} else {
				if err := gradeFlip(cmd, session, in); err != nil {
					return err
				}
			}
			cmd.Printf("%d cards remaining\n", session.Remaining())
		}

		printTotals(cmd, session.Totals())
		return nil
	},
}

// gradeTyped reads one typed answer and fuzzy-grades it.
func gradeTyped(cmd *cobra.Command, session *usecase.Session, in *bufio.Scanner) error {
	cmd.Print("> ")
	line, quit := readLine(in)
	if quit {
		session.Stop()
		return nil
	}
	if line == "/skip" {
		return session.Skip()
	}

	expected := session.Expected()
	result, err := session.SubmitTranscript(cmd.Context(), line)
	if err != nil {
		return err
	}
	if result.Correct {
		cmd.Printf("Correct! (similarity %.2f)\n", result.Similarity)
	} else {
		cmd.Printf("Not quite (similarity %.2f). The answer is: %s\n", result.Similarity, expected)
	}
	return nil
}

// gradeFlip reveals the answer and asks for a self-judgment.
func gradeFlip(cmd *cobra.Command, session *usecase.Session, in *bufio.Scanner) error {
	cmd.Print("Press enter to reveal... ")
	line, quit := readLine(in)
	if quit {
		session.Stop()
		return nil
	}
	if line == "/skip" {
		return session.Skip()
	}

	cmd.Printf("Answer: %s\n", session.Expected())
	cmd.Print("Got it? [y/n/skip] ")
	line, quit = readLine(in)
	if quit {
		session.Stop()
		return nil
	}
	switch strings.ToLower(line) {
	case "skip", "/skip", "s":
		return session.Skip()
	default:
		correct := strings.HasPrefix(strings.ToLower(line), "y")
		if err := session.SubmitJudgment(cmd.Context(), correct); err != nil {
			if errors.Is(err, entity.ErrSessionFinished) {
				return nil
			}
			return err
		}
		return nil
	}
}

// readLine returns the next trimmed line; quit is true on EOF or /quit.
func readLine(in *bufio.Scanner) (string, bool) {
	if !in.Scan() {
		return "", true
	}
	line := strings.TrimSpace(in.Text())
	if line == "/quit" {
		return "", true
	}
	return line, false
}

func init() {
	rootCmd.AddCommand(practiceCmd)

	addSessionFlags(practiceCmd)
	practiceCmd.Flags().Bool("typed", false, "type answers instead of flip-card self judgment")
	practiceCmd.Flags().Bool("practice", false, "run without persisting review outcomes")
}
