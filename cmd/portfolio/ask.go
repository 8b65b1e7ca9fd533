package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	askAI    bool
	askPlain bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant one question and print the reply",
	Example: `  portfolio ask "Tell me about ASL Digits Recognizer"
  portfolio ask --ai "Which project would suit a retail company?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	question := strings.Join(args, " ")
	reply, err := a.ask(cmd.Context(), question, askAI)
	if err != nil {
		return err
	}
	if askPlain {
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(reply))
	return nil
}

func (a *app) ask(ctx context.Context, question string, ai bool) (string, error) {
	if !ai {
		r := a.engine.Reply(question)
		a.logger.Debug("local reply", zap.String("directive", r.Directive.ID()))
		return r.Text, nil
	}
	if a.relay == nil {
		return "", fmt.Errorf("no language model configured")
	}
	return a.relay.Reply(ctx, question)
}

// renderMarkdown falls back to the raw text when the terminal renderer
// cannot be built.
func renderMarkdown(text string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return text + "\n"
	}
	out, err := r.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}
