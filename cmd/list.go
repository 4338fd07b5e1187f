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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eslsoft/chindospeak/internal/app"
	"github.com/eslsoft/chindospeak/internal/entity"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cards in the deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		container, cleanup, err := app.Initialize()
		if err != nil {
			return err
		}
		defer cleanup()

		categoryID := ""
		if name, _ := cmd.Flags().GetString("category"); name != "" {
			category, err := container.Categories.FindByName(ctx, name)
			if err != nil {
				return err
			}
			if category == nil {
				return fmt.Errorf("category %q: %w", name, entity.ErrCategoryNotFound)
			}
			categoryID = category.ID
		}

		cards, err := container.Deck.ListCards(ctx, categoryID)
		if err != nil {
			return err
		}
		for _, card := range cards {
			cmd.Printf("%-20s %-20s R%d L%d S%d\n",
				card.Word, card.Translation,
				card.Reading.Level, card.Listening.Level, card.Speaking.Level)
		}
		cmd.Printf("%d cards\n", len(cards))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("category", "c", "", "only show cards in this category")
}
