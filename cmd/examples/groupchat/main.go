// Command groupchat runs a three-agent round-robin writing room defined
// in a YAML file: a clientless moderator plus an OpenAI-backed writer
// and critic sharing one instrumented client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Ingenimax/agentchat-go/pkg/agent"
	"github.com/Ingenimax/agentchat-go/pkg/agentchat"
	"github.com/Ingenimax/agentchat-go/pkg/agentconfig"
	"github.com/Ingenimax/agentchat-go/pkg/config"
	"github.com/Ingenimax/agentchat-go/pkg/metrics"
	"github.com/Ingenimax/agentchat-go/pkg/tracing"
	"github.com/Ingenimax/agentchat-go/pkg/usage"
)

func main() {
	configPath := flag.String("config", "agents.yaml", "path to the agent definitions file")
	topic := flag.String("topic", "a lighthouse keeper who collects radio signals", "story topic")
	flag.Parse()

	ctx := context.Background()
	cfg := config.LoadFromEnv()

	// Tracing is a no-op unless AGENTCHAT_TRACING_ENABLED is set
	shutdown, err := tracing.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Failed to shut down tracing: %v", err)
		}
	}()

	// One OpenAI client shared by the writer and the critic, wrapped
	// with span and metrics middleware
	registry := prometheus.NewRegistry()
	llmClient, err := agent.NewLLMFromConfig(ctx, "openai", "", cfg)
	if err != nil {
		log.Fatalf("Failed to create OpenAI client: %v", err)
	}
	sharedLLM := tracing.NewTracedLLM(metrics.NewInstrumentedLLM(llmClient, metrics.New(registry)))

	file, err := agentconfig.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to load agent definitions: %v", err)
	}

	agents := make([]*agent.Agent, 0, len(file.Agents))
	for _, def := range file.Agents {
		var extra []agent.Option
		if def.Name != "moderator" {
			extra = append(extra, agent.WithLLM(sharedLLM))
		}
		member, err := agent.NewFromDefinition(ctx, def, cfg, extra...)
		if err != nil {
			log.Fatalf("Failed to create agent %s: %v", def.Name, err)
		}
		agents = append(agents, member)
	}

	session := agentchat.New(
		agentchat.WithTracer(tracing.NewSessionTracer()),
		agentchat.WithSummaryMethod(agentchat.SummaryReflectionWithLLM),
	)
	chat, err := agentchat.NewGroupChat(session, agents, agentchat.WithMaxRounds(3))
	if err != nil {
		log.Fatalf("Failed to create group chat: %v", err)
	}

	result, err := chat.Run(ctx, "Write a four-sentence story about "+*topic+".")
	if err != nil {
		log.Fatalf("Group chat failed: %v", err)
	}

	fmt.Println("=== Conversation ===")
	for _, message := range result.History {
		fmt.Printf("%s: %s\n\n", message.Sender, message.Content)
	}
	fmt.Println("=== Summary ===")
	fmt.Println(result.Summary)
	fmt.Printf("(terminated: %s)\n\n", result.Reason)

	providers := make([]usage.Provider, len(agents))
	for i, member := range agents {
		providers[i] = member
	}
	usage.PrintSummary(os.Stdout, providers...)

	printMetrics(registry)
}

// printMetrics dumps the collected metric families, one line per series
func printMetrics(registry *prometheus.Registry) {
	families, err := registry.Gather()
	if err != nil {
		log.Printf("Failed to gather metrics: %v", err)
		return
	}
	fmt.Println("=== Metrics ===")
	for _, family := range families {
		fmt.Printf("%s: %d series\n", family.GetName(), len(family.GetMetric()))
	}
}
