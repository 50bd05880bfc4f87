// The devdesk CLI exercises the full account lifecycle against a running
// server: register, verify, login, inspect, update, logout, delete. It is
// an interactive shell because the session lives in in-memory cookies and
// only survives for the duration of the process.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/devdesk/devdesk/internal/adapter"
	"github.com/devdesk/devdesk/internal/client"
	"github.com/devdesk/devdesk/internal/config"
	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("devdesk-client")

	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	baseURL := flag.String("s", cfg.Adapter.BaseURL, "server base URL")
	flag.Parse()
	cfg.Adapter.BaseURL = *baseURL

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server adapter")
	}

	controller := client.NewSessionController(serverAdapter, log)
	controller.Subscribe(func(s client.Session) {
		if s.State == client.StateAuthenticated {
			fmt.Printf("* session: %s (%s)\n", s.User.Name, s.User.Email)
		} else {
			fmt.Printf("* session: %s\n", s.State)
		}
	})

	ctx := context.Background()
	if err = controller.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("session restore failed")
	}

	fmt.Printf("devdesk client %s (%s, %s)\n", orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
	printHelp()
	runShell(ctx, controller)
}

func runShell(ctx context.Context, controller *client.SessionController) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "register":
			if len(args) != 4 {
				fmt.Println("usage: register <name> <email> <password>")
				continue
			}
			result, err := controller.Register(ctx, args[1], args[2], args[3])
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Println(result.Message)

		case "verify":
			if len(args) != 3 {
				fmt.Println("usage: verify <email> <otp>")
				continue
			}
			if err := controller.CompleteLogin(ctx, args[1], args[2]); err != nil {
				fmt.Println("error:", err)
			}

		case "login":
			if len(args) != 3 {
				fmt.Println("usage: login <email> <password>")
				continue
			}
			if err := controller.Login(ctx, args[1], args[2]); err != nil {
				fmt.Println("error:", err)
			}

		case "me":
			s := controller.Current()
			if s.State != client.StateAuthenticated {
				fmt.Println("not logged in")
				continue
			}
			fmt.Printf("%s <%s> verified=%t since=%s\n", s.User.Name, s.User.Email, s.User.IsVerified, s.User.CreatedAt.Format("2006-01-02"))

		case "rename":
			if len(args) != 2 {
				fmt.Println("usage: rename <new-name>")
				continue
			}
			if err := controller.UpdateProfile(ctx, models.ProfileUpdate{Name: &args[1]}); err != nil {
				fmt.Println("error:", err)
			}

		case "logout":
			if err := controller.Logout(ctx); err != nil {
				fmt.Println("error:", err)
			}

		case "delete":
			if err := controller.DeleteAccount(ctx); err != nil {
				fmt.Println("error:", err)
			}

		case "help":
			printHelp()

		case "quit", "exit":
			return

		default:
			fmt.Println("unknown command:", args[0])
		}
	}
}

func printHelp() {
	fmt.Println(`commands:
  register <name> <email> <password>
  verify <email> <otp>
  login <email> <password>
  me
  rename <new-name>
  logout
  delete
  quit`)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
