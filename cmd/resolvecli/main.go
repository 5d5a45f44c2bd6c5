// Interactive console for exercising the resolution pipeline without the
// HTTP server. Type an instruction, get back the plan, question, or
// refusal the API would return.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"ordermypdf-be/internal/config"
	"ordermypdf-be/pkg/llm/factory"
	"ordermypdf-be/pkg/resolve"
	"ordermypdf-be/pkg/resolve/order"
	"ordermypdf-be/pkg/session"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()

	var rewriter resolve.Rewriter
	if cfg.Ai.Provider != "" {
		provider, err := factory.New(cfg.Ai.Provider, cfg.Ai.Model, cfg.Ai.OllamaBaseURL, cfg.Ai.HuggingFaceAPIKey)
		if err != nil {
			log.Printf("[WARN] LLM provider unavailable: %v (deterministic only)", err)
		} else {
			rewriter = resolve.NewLLMRewriter(provider, cfg.Ai.RewriteTemperature)
		}
	}

	store := session.NewMemoryStore(cfg.Session.TTL, cfg.Session.Sweep)
	resolver := resolve.New(store, rewriter, nil)
	sessionId := uuid.NewString()

	files := []string{"document.pdf"}
	if len(os.Args) > 1 {
		files = os.Args[1:]
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Println("ordermypdf resolver console")
	fmt.Printf("files: %s\n", strings.Join(files, ", "))
	fmt.Println(`type an instruction, "files a.pdf b.pdf" to change files, "reset" to clear the session, or "quit"`)

	planColor := color.New(color.FgGreen)
	askColor := color.New(color.FgYellow)
	skipColor := color.New(color.FgMagenta)
	noColor := color.New(color.FgRed)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch {
		case line == "quit" || line == "exit":
			return
		case line == "reset":
			store.Delete(sessionId)
			fmt.Println("session cleared")
			continue
		case strings.HasPrefix(line, "files "):
			files = strings.Fields(strings.TrimPrefix(line, "files "))
			fmt.Printf("files: %s\n", strings.Join(files, ", "))
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		outcome := resolver.Resolve(ctx, resolve.Request{
			SessionID: sessionId,
			Text:      line,
			Files:     files,
		})
		cancel()

		switch outcome.Type {
		case resolve.OutcomePlan:
			planColor.Printf("plan (stage %d, confidence %.2f):\n", outcome.Stage, outcome.Confidence)
			for i, step := range outcome.Plan.Steps {
				fmt.Printf("  %d. %s\n", i+1, order.Describe(step))
			}
			if outcome.Message != "" {
				fmt.Printf("  note: %s\n", outcome.Message)
			}
		case resolve.OutcomeQuestion:
			askColor.Printf("? %s\n", outcome.Clarification.Question)
			for i, opt := range outcome.Clarification.Options {
				fmt.Printf("  %d) %s\n", i+1, opt)
			}
		case resolve.OutcomeSkip:
			skipColor.Printf("skip: %s\n", outcome.Message)
		case resolve.OutcomeUnsupported:
			noColor.Println(outcome.Message)
		}
	}
}
