package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/tagalog-breakdown/internal/script"
)

var syllabifyCmd = &cobra.Command{
	Use:   "syllabify WORD...",
	Short: "Print the syllables of each word",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSyllabify,
}

var composeCmd = &cobra.Command{
	Use:   "compose PHRASE...",
	Short: "Print the breakdown sequence of a phrase, one step per line",
	Long: `Print the breakdown sequence of a phrase, one step per line.
Multiple arguments are joined into one phrase.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompose,
}

var phrasesCmd = &cobra.Command{
	Use:   "phrases FILE",
	Short: "Preview breakdowns for every multi-word phrase spoken in a transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runPhrases,
}

func runSyllabify(cmd *cobra.Command, args []string) error {
	c, err := newComposer()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, word := range args {
		syl := c.Syllabifier().Syllabify(word)
		line := fmt.Sprintf("%s\t%s", word, strings.Join(syl, "-"))
		if c.Classifier().IsLoanword(word) {
			line += "\t(loanword)"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func runCompose(cmd *cobra.Command, args []string) error {
	c, err := newComposer()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, step := range c.Compose(strings.Join(args, " ")) {
		fmt.Fprintln(out, step)
	}
	return nil
}

func runPhrases(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	c, err := newComposer()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, phrase := range script.TaggedPhrases(string(data)) {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "# %s\n", phrase)
		for _, step := range c.Compose(phrase) {
			fmt.Fprintln(out, step)
		}
	}
	return nil
}
