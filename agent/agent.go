// Package agent is an interactive AI analyst for one portfolio.
//
// The analyst is grounded with the markdown reports produced by the
// renderer package: transactions, holdings and growth. It never mutates
// the ledger; booking trades stays with the engine.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const systemPrompt = `You are a portfolio analyst. You are given markdown
reports of one user's portfolio: the transaction log, the current
holdings and the day-by-day growth of the account. Answer questions
about this portfolio only, using the figures from the reports. Be
concise, and say so when a figure is not in the reports.`

// Analyst is a chat session grounded with portfolio reports.
type Analyst struct {
	ModelName string
	reports   []string
	chat      *genai.Chat
}

// NewAnalyst creates an analyst grounded with the given markdown
// reports.
func NewAnalyst(reports ...string) *Analyst {
	return &Analyst{
		ModelName: defaultModel,
		reports:   reports,
	}
}

// Start creates the chat session and feeds it the reports.
func (a *Analyst) Start(ctx context.Context, client *genai.Client) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}
	chat, err := client.Chats.Create(ctx, a.ModelName, config, nil)
	if err != nil {
		return err
	}
	a.chat = chat

	if len(a.reports) > 0 {
		parts := make([]genai.Part, 0, len(a.reports))
		for _, r := range a.reports {
			parts = append(parts, genai.Part{Text: r})
		}
		if _, err := chat.SendMessage(ctx, parts...); err != nil {
			return err
		}
	}
	return nil
}

// Ask sends one question and returns the analyst's answer.
func (a *Analyst) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.SendMessage(ctx, genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from analyst")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

const prompt = "analyst> "

// Run starts the interactive REPL session. Optional initial prompts are
// consumed before reading from r.
func (a *Analyst) Run(ctx context.Context, client *genai.Client, w io.Writer, r io.Reader, prompts ...string) error {
	if a.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "Welcome to the portfolio analyst. Type 'bye' to exit.")
	in := bufio.NewReader(r)

	for {
		fmt.Fprint(w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(w, input)
		} else {
			var err error
			input, err = in.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, answer)
	}
}
