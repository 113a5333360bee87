// chichat-prompt prints the system prompt assembled for one customer message.
//
// Usage:
//
//	chichat-prompt --message "How much to Roanoke, VA?" [--name Sandy] [--send]
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"chichat/internal/app"
	"chichat/internal/config"
	"chichat/internal/service"
)

func main() {
	cliApp := &cli.App{
		Name:  "chichat-prompt",
		Usage: "Preview the assembled Chi-Chat prompt for a message",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "message",
				Aliases:  []string{"m"},
				Usage:    "customer message",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "customer name already known to the widget",
			},
			&cli.BoolFlag{
				Name:  "send",
				Usage: "also send the prompt to the configured LLM and print its reply",
			},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := c.Context
	components, err := app.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer components.Close()

	msg := service.IncomingMessage{
		Text:              c.String("message"),
		KnownCustomerName: c.String("name"),
	}

	assembly := components.Assembler.Assemble(ctx, msg)
	fmt.Printf("customer name: %q\n", assembly.CustomerName)
	fmt.Printf("delivery quote: %t (destination %q, round trip %t)\n",
		assembly.Quote != nil, assembly.Intent.Destination, assembly.Intent.RoundTrip)
	if assembly.Intent.WantsAvailability {
		fmt.Printf("availability: %s\n", assembly.Availability)
	}
	fmt.Println("----- system prompt -----")
	fmt.Print(assembly.Payload)

	if !c.Bool("send") {
		return nil
	}

	reply, err := components.Chat.Reply(ctx, msg)
	if errors.Is(err, service.ErrMissingCredentials) {
		return fmt.Errorf("--send needs an LLM key for provider %q", cfg.LLM.Provider)
	}
	if err != nil {
		return err
	}
	fmt.Println("----- reply -----")
	fmt.Println(reply.Reply)
	return nil
}
