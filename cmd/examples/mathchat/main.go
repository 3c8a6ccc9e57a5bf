// Command mathchat runs a two-agent math conversation: an OpenAI-backed
// assistant paired with a user proxy that nudges it along with a default
// auto reply until the assistant signals TERMINATE.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Ingenimax/agentchat-go/pkg/agent"
	"github.com/Ingenimax/agentchat-go/pkg/agentchat"
	"github.com/Ingenimax/agentchat-go/pkg/cache"
	"github.com/Ingenimax/agentchat-go/pkg/config"
	"github.com/Ingenimax/agentchat-go/pkg/transcript"
	_ "github.com/Ingenimax/agentchat-go/pkg/transcript/gcs"
	_ "github.com/Ingenimax/agentchat-go/pkg/transcript/local"
	"github.com/Ingenimax/agentchat-go/pkg/usage"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadFromEnv()

	// Create the OpenAI client for the assistant
	llmClient, err := agent.NewLLMFromConfig(ctx, "openai", "", cfg)
	if err != nil {
		log.Fatalf("Failed to create OpenAI client: %v", err)
	}

	// Wrap it in a seeded completion cache so repeated runs of the same
	// conversation are served without new token cost
	cachedLLM := cache.New(llmClient, cache.NewInMemoryStore(), cache.WithSeed(41))

	assistant, err := agent.New("assistant",
		agent.WithLLM(cachedLLM),
		agent.WithSystemPrompt("You are a helpful math assistant. Solve the task step by step. Reply TERMINATE when the task is done."),
		agent.WithHumanInputMode(agent.HumanInputNever),
	)
	if err != nil {
		log.Fatalf("Failed to create assistant: %v", err)
	}

	proxy, err := agent.New("mathproxyagent",
		agent.WithHumanInputMode(agent.HumanInputNever),
		agent.WithMaxConsecutiveAutoReply(2),
		agent.WithDefaultAutoReply("Please continue. If everything is done, reply 'TERMINATE'."),
	)
	if err != nil {
		log.Fatalf("Failed to create user proxy: %v", err)
	}

	store, err := transcript.New(transcript.Config{
		Type:  cfg.Transcript.Type,
		Local: transcript.LocalConfig{Path: cfg.Transcript.Path},
		GCS: transcript.GCSConfig{
			Bucket:          cfg.Transcript.Bucket,
			Prefix:          cfg.Transcript.Prefix,
			CredentialsFile: cfg.Transcript.CredentialsFile,
		},
	})
	if err != nil {
		log.Fatalf("Failed to create transcript store: %v", err)
	}

	session := agentchat.New(
		agentchat.WithSummaryMethod(agentchat.SummaryReflectionWithLLM),
		agentchat.WithTranscriptStore(store),
	)

	result, err := session.Initiate(ctx, proxy, assistant,
		"What is (44232 + 13312 / (232 - 32)) * 5?")
	if err != nil {
		log.Fatalf("Conversation failed: %v", err)
	}

	fmt.Println("=== Conversation ===")
	for _, message := range result.History {
		fmt.Printf("%s: %s\n\n", message.Sender, message.Content)
	}
	fmt.Println("=== Summary ===")
	fmt.Println(result.Summary)
	fmt.Printf("(terminated: %s)\n\n", result.Reason)

	usage.PrintSummary(os.Stdout, assistant, proxy)
}
