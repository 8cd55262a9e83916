// README: Terminal demo; feeds typed turns through the advisor end to end.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"wayfarer/internal/conversation"
	"wayfarer/internal/llm"
	"wayfarer/internal/recommend"
	"wayfarer/internal/service"
)

func main() {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable not set")
	}

	provider := llm.NewOpenAIProvider(apiKey)
	advisor := service.NewTripAdvisor(conversation.NewRegexAnalyzer(), provider, nil, "gpt-4o-mini")

	msgLog := conversation.NewLog()
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Wayfarer demo. Tell me about a trip (ctrl-D to quit).")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		msgLog.Append(conversation.Message{
			Role:      conversation.RoleUser,
			Content:   text,
			Timestamp: time.Now().UnixMilli(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		result, err := advisor.Advise(ctx, msgLog.Messages())
		cancel()
		if err != nil {
			log.Printf("turn failed: %v", err)
			continue
		}

		if result.Phase == conversation.PhaseGathering {
			fmt.Printf("Wayfarer: %s\n", result.Message)
			msgLog.Append(conversation.Message{
				Role:      conversation.RoleAssistant,
				Content:   result.Message,
				Timestamp: time.Now().UnixMilli(),
			})
			continue
		}

		fmt.Printf("Wayfarer: %s\n", result.Summary)
		for i, plan := range result.Plans {
			fmt.Printf("  %d. %s, %s — %.0f %s, ~%s\n",
				i+1, plan.Destination, plan.Country,
				plan.Budget.Estimated, plan.Budget.Currency,
				hoursLabel(plan))
		}
		msgLog.Append(conversation.Message{
			Role:      conversation.RoleAssistant,
			Content:   result.Summary,
			Timestamp: time.Now().UnixMilli(),
		})
	}
}

func hoursLabel(plan recommend.TravelPlan) string {
	if plan.Duration.Hours != nil {
		return fmt.Sprintf("%.0f hours", *plan.Duration.Hours)
	}
	return fmt.Sprintf("%d nights", plan.Duration.Nights)
}
