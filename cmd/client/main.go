package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddress string `envconfig:"CHAT_SERVER_ADDR" default:"127.0.0.1:12345"`
	// CHAT_COLOURS tags server, direct and group lines with distinct colours
	Colours  bool   `envconfig:"CHAT_COLOURS" default:"true"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run connects to the chat server, prints every line it receives and forwards
// every line typed on stdin. It stops on Ctrl+C, on EOF or when the server closes.
func run() (int, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", config.ServerAddress)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to server at %s: %w", config.ServerAddress, err)
	}
	defer func() {
		log.Debug("Closing connection...")
		_ = conn.Close()
	}()
	context.AfterFunc(ctx, func() { _ = conn.Close() })

	received := make(chan error, 1)
	go func() {
		received <- printLines(conn, os.Stdout, config.Colours)
	}()
	go forwardLines(os.Stdin, conn)

	select {
	case <-ctx.Done():
		log.Info("Stopping client...")
		return exitOK, nil
	case err := <-received:
		if err != nil && ctx.Err() == nil {
			return exitRuntime, fmt.Errorf("connection error: %w", err)
		}
		log.Info("Disconnected from server")
		return exitOK, nil
	}
}

// printLines returns nil once the server closes the connection.
func printLines(r io.Reader, w io.Writer, colours bool) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			// Prompts have no line of input behind them yet, keep the cursor on the same line
			text := strings.TrimSuffix(line, "\n")
			if strings.HasSuffix(text, ": ") {
				fmt.Fprint(w, render(text, colours))
			} else {
				fmt.Fprintln(w, render(text, colours))
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func forwardLines(r io.Reader, conn net.Conn) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if _, err := io.WriteString(conn, scanner.Text()+"\n"); err != nil {
			return
		}
	}
}

func render(line string, colours bool) string {
	if !colours {
		return line
	}
	switch {
	case strings.HasPrefix(line, "[ Server ]"):
		return color.New(color.FgYellow).Render(line)
	case strings.HasPrefix(line, "[ Group "):
		return color.New(color.FgCyan).Render(line)
	case strings.HasPrefix(line, "[ "):
		return color.New(color.FgGreen).Render(line)
	default:
		return line
	}
}
