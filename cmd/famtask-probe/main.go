// Command famtask-probe exercises a famtask backend end to end: it logs in,
// prints the resolved session and route, and lists the account's todos.
// Useful for smoke-checking a deployment (or the mock backend) without a
// device in hand.
//
// Usage:
//
//	famtask-probe -base http://localhost:3000 -email child@example.com -password 1234
//	famtask-probe -config probe.yaml -email child@example.com -password 1234
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	famtask "github.com/MrEthical07/famtask"
	"github.com/MrEthical07/famtask/storage"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		baseURL    = flag.String("base", "", "backend base URL (overrides config)")
		email      = flag.String("email", "", "login email")
		password   = flag.String("password", "", "login password")
		timeout    = flag.Duration("timeout", 30*time.Second, "overall probe deadline")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "email and password are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := famtask.DefaultConfig()
	if *configPath != "" {
		loaded, err := famtask.LoadConfigFile(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}

	engine, err := famtask.New().
		WithConfig(cfg).
		WithStore(storage.NewMemory()).
		WithAuditSink(famtask.NewJSONWriterSink(os.Stderr)).
		Build()
	if err != nil {
		log.Fatalf("build engine: %v", err)
	}
	defer engine.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	state := engine.Rehydrate(ctx)
	fmt.Printf("rehydrated: %s\n", state.Status)

	result, err := engine.Login(ctx, *email, *password)
	if err != nil {
		log.Fatalf("login: %v", err)
	}
	fmt.Printf("logged in as %s (%s)\n", result.User.Name, famtask.RoleOf(result.User))
	fmt.Printf("route: %s\n", engine.Route())

	todos, err := engine.AllTodos(ctx)
	if err != nil {
		log.Fatalf("list todos: %v", err)
	}
	fmt.Printf("todos: %d\n", len(todos))
	for _, t := range todos {
		status := " "
		if t.Done {
			status = "x"
		}
		fmt.Printf("  [%s] %s (%s)\n", status, t.Title, t.ID)
	}

	engine.Logout(ctx)
	fmt.Printf("after logout: %s\n", engine.Route())
}
