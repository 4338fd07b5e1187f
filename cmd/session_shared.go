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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eslsoft/chindospeak/internal/app"
	"github.com/eslsoft/chindospeak/internal/entity"
	"github.com/eslsoft/chindospeak/internal/usecase"
)

// addSessionFlags registers the flags shared by the practice and drive
// commands.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("skill", "s", "reading", "skill track to drill (reading|listening|speaking)")
	cmd.Flags().StringP("direction", "d", "mixed", "prompt direction (word|translation|mixed)")
	cmd.Flags().StringP("category", "c", "", "limit the session to one category")
	cmd.Flags().StringP("language", "l", "", "card language (chinese|indonesian), defaults from config")
	cmd.Flags().Float64P("threshold", "t", 0, "similarity threshold for fuzzy grading, defaults from config")
}

// sessionConfigFromFlags resolves the shared flags against the container's
// configuration and category store.
func sessionConfigFromFlags(ctx context.Context, cmd *cobra.Command, c *app.Container) (usecase.SessionConfig, error) {
	var cfg usecase.SessionConfig

	skillFlag, _ := cmd.Flags().GetString("skill")
	skill, err := entity.ParseSkill(skillFlag)
	if err != nil {
		return cfg, fmt.Errorf("skill %q: %w", skillFlag, err)
	}

	directionFlag, _ := cmd.Flags().GetString("direction")
	direction, err := entity.ParseDirection(directionFlag)
	if err != nil {
		return cfg, fmt.Errorf("direction %q: %w", directionFlag, err)
	}

	languageFlag, _ := cmd.Flags().GetString("language")
	if languageFlag == "" {
		languageFlag = c.Config.Speech.Language
	}
	language := entity.ParseLanguage(languageFlag)
	if language == entity.LanguageUnspecified && languageFlag != "" {
		return cfg, fmt.Errorf("unsupported language %q", languageFlag)
	}

	threshold, _ := cmd.Flags().GetFloat64("threshold")
	if threshold <= 0 {
		threshold = c.Config.Review.Threshold
	}

	categoryID := ""
	if name, _ := cmd.Flags().GetString("category"); name != "" {
		category, err := c.Categories.FindByName(ctx, name)
		if err != nil {
			return cfg, err
		}
		if category == nil {
			return cfg, fmt.Errorf("category %q: %w", name, entity.ErrCategoryNotFound)
		}
		categoryID = category.ID
	}

	return usecase.SessionConfig{
		Skill:      skill,
		Direction:  direction,
		Language:   language,
		CategoryID: categoryID,
		Threshold:  threshold,
	}, nil
}

func printTotals(cmd *cobra.Command, totals entity.SessionTotals) {
	cmd.Printf("Session complete: %d correct, %d incorrect, %d skipped\n",
		totals.Correct, totals.Incorrect, totals.Skipped)
}
