package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/suPer8Hu/interview-lens/internal/client"
	"github.com/suPer8Hu/interview-lens/internal/schema"
)

var (
	serverURL      = flag.String("server", "http://localhost:3001", "interview-lens server URL")
	mode           = flag.String("mode", "chat", "chat, chat-stream or analyze")
	conversationID = flag.String("conversation", "", "conversation id to continue (chat modes)")
	file           = flag.String("file", "", "read the message or transcript from this file ('-' for stdin)")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boldRed := color.New(color.FgRed, color.Bold).SprintFunc()
	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, boldRed("error: ")+err.Error())
		os.Exit(1)
	}
}

func input() (string, error) {
	switch *file {
	case "":
		text := strings.Join(flag.Args(), " ")
		if strings.TrimSpace(text) == "" {
			return "", errors.New("nothing to send: pass text as arguments or use -file")
		}
		return text, nil
	case "-":
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	default:
		b, err := os.ReadFile(*file)
		return string(b), err
	}
}

func run(ctx context.Context) error {
	text, err := input()
	if err != nil {
		return err
	}

	c := client.New(*serverURL)
	cyan := color.New(color.FgCyan).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	printToken := func(s string) { fmt.Print(s) }

	switch *mode {
	case "chat":
		resp, err := c.Chat(ctx, schema.ChatRequest{Message: text, ConversationID: *conversationID})
		if err != nil {
			return err
		}
		fmt.Println(resp.Response)
		fmt.Println(faint(fmt.Sprintf("conversation=%s message=%s", resp.ConversationID, resp.MessageID)))
		return nil

	case "chat-stream":
		id, err := c.ChatStream(ctx, schema.ChatRequest{Message: text, ConversationID: *conversationID, Stream: true}, printToken)
		fmt.Println()
		if err != nil {
			return streamErr(err)
		}
		fmt.Println(faint("message=" + id))
		return nil

	case "analyze":
		fmt.Println(cyan("Analyzing transcript..."))
		id, err := c.Analyze(ctx, text, printToken)
		fmt.Println()
		if err != nil {
			return streamErr(err)
		}
		fmt.Println(faint("message=" + id))
		return nil
	}
	return fmt.Errorf("unknown mode %q", *mode)
}

func streamErr(err error) error {
	if errors.Is(err, client.ErrTruncated) {
		return errors.New("the model stopped before finishing; the output above is incomplete")
	}
	return err
}
