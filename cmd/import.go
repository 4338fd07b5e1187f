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
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eslsoft/chindospeak/internal/app"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import cards from a JSON export or an xlsx spreadsheet",
	Long: `import reads cards from a file. A .xlsx spreadsheet is expected to
have a header row followed by word | translation | pronunciation |
category columns; anything else is parsed as a JSON deck export. Cards
that already exist are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		container, cleanup, err := app.Initialize()
		if err != nil {
			return err
		}
		defer cleanup()

		var created int
		if strings.EqualFold(filepath.Ext(path), ".xlsx") {
			created, err = container.Deck.ImportXLSX(ctx, path)
		} else {
			var f *os.File
			f, err = os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			created, err = container.Deck.ImportJSON(ctx, f)
		}
		if err != nil {
			return err
		}
		cmd.Printf("imported %d cards\n", created)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
