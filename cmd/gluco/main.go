// Package main is the Gluco CLI entry point.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/gluco/internal/app"
	"github.com/hyperjump/gluco/internal/cli"
	"github.com/hyperjump/gluco/internal/config"
	"github.com/hyperjump/gluco/internal/models"
	"github.com/hyperjump/gluco/internal/server"
	"github.com/hyperjump/gluco/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/gluco/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "serve", "server":
		runServe()
	case "ask":
		runAsk()
	case "chat":
		runChat()
	case "predict":
		runPredict()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("gluco version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	watch := fs.Bool("watch", false, "reload when the corpus or model files change (overrides config)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *watch {
		cfg.Watch.Enabled = true
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
		zap.Bool("watch", cfg.Watch.Enabled),
	)

	holder, err := app.NewHolder(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer holder.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := holder.Watch(watchCtx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}

	srv := server.NewServer(holder, &cfg.Server, version, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// loadContext loads config and the application context for one-shot commands.
// Logging is silent unless debug is set, so stdout carries only command output.
func loadContext(configPath string, debug bool) (*app.Context, *zap.Logger) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := zap.NewNop()
	if cfg.Debug || debug {
		if logger, err = utils.NewLogger(true); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
	}
	c, err := app.Load(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	return c, logger
}

func parseFormat(s string) cli.OutputFormat {
	format, err := cli.ParseOutputFormat(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return format
}

func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves every flag (with its value) to the front so that flag.Parse() sees
// them, since Go's flag package stops at the first non-flag argument. Positional
// arguments keep the order they were typed in and follow a "--" terminator.
// Negative numbers are positional values unless they follow a flag that takes a value.
func argsReorder(fs *flag.FlagSet, args []string) []string {
	flags := make([]string, 0, len(args)+1)
	var positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if !isFlag(a) {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
		if takesValue(fs, a) && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	if len(positional) == 0 {
		return flags
	}
	flags = append(flags, "--")
	return append(flags, positional...)
}

// takesValue reports whether flag argument a consumes the next argument as its value.
func takesValue(fs *flag.FlagSet, a string) bool {
	name := strings.TrimLeft(a, "-")
	if strings.Contains(name, "=") {
		return false
	}
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
		return false
	}
	return true
}

func isFlag(a string) bool {
	if len(a) < 2 || a[0] != '-' {
		return false
	}
	c := a[1]
	return c != '.' && (c < '0' || c > '9')
}

func printAskUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: gluco ask [flags] <question>\n\n")
	fmt.Fprintf(fs.Output(), "The question is all remaining arguments joined by spaces.\n\n")
	fs.PrintDefaults()
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = answer in-process)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	debug := fs.Bool("debug", false, "enable debug logging")
	fs.Usage = func() { printAskUsage(fs) }
	_ = fs.Parse(argsReorder(fs, os.Args[2:]))

	query := buildQuery(fs.Args())
	if query == "" {
		printAskUsage(fs)
		os.Exit(1)
	}
	format := parseFormat(*outputFormat)

	var resp models.ChatResponse
	if *serverURL != "" {
		if err := postJSON(*serverURL+"/api/v1/chat", models.ChatRequest{Query: query}, &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		c, logger := loadContext(*configPath, *debug)
		defer logger.Sync()
		defer c.Close()
		resp = c.Chat(query)
	}
	if err := cli.WriteChat(os.Stdout, resp, format); err != nil {
		fmt.Fprintf(os.Stderr, "Write failed: %v\n", err)
		os.Exit(1)
	}
}

func runChat() {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	c, logger := loadContext(*configPath, *debug)
	defer logger.Sync()
	defer c.Close()

	fmt.Println("Chatbot Diabetes. Ketik pertanyaan Anda, atau \"keluar\" untuk berhenti.")
	if err := chatLoop(os.Stdin, os.Stdout, c); err != nil {
		fmt.Fprintf(os.Stderr, "Chat failed: %v\n", err)
		os.Exit(1)
	}
}

// chatLoop answers one question per input line until EOF or an exit word.
func chatLoop(in io.Reader, out io.Writer, c *app.Context) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := utils.CollapseSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "keluar", "exit", "quit":
			return nil
		}
		if err := cli.WriteChat(out, c.Chat(line), cli.OutputText); err != nil {
			return err
		}
	}
}

func printPredictUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: gluco predict [flags] [<8 values>]\n\n")
	fmt.Fprintf(fs.Output(), "Give all eight measurements either as named flags or as positional values in order:\n")
	fmt.Fprintf(fs.Output(), "  %s\n\n", strings.Join(models.FieldNames[:], " "))
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  gluco predict 2 150 85 30 100 32.0 0.6 45
  gluco predict --glucose 150 --bmi 32 --age 45 --pregnancies 2 \
    --blood_pressure 85 --skin_thickness 30 --insulin 100 --diabetes_pedigree 0.6
`)
}

func runPredict() {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = predict in-process)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	debug := fs.Bool("debug", false, "enable debug logging")
	var named [models.NumFeatures]float64
	for i, fr := range models.FieldRanges {
		fs.Float64Var(&named[i], fr.Name, 0, fmt.Sprintf("%s (%g to %g)", fr.Name, fr.Min, fr.Max))
	}
	fs.Usage = func() { printPredictUsage(fs) }
	_ = fs.Parse(argsReorder(fs, os.Args[2:]))
	format := parseFormat(*outputFormat)

	record, err := recordFromArgs(fs, named)
	if err == nil {
		err = record.ValidateRanges()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		printPredictUsage(fs)
		os.Exit(1)
	}

	var resp models.PredictResponse
	if *serverURL != "" {
		if err := postJSON(*serverURL+"/api/v1/predict", models.PredictRequest{Values: record.Values()}, &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Predict failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		c, logger := loadContext(*configPath, *debug)
		defer logger.Sync()
		defer c.Close()
		resp = cli.BuildPredictResponse(c.Classifier().PredictRecord(record))
	}
	if err := cli.WritePrediction(os.Stdout, resp, format); err != nil {
		fmt.Fprintf(os.Stderr, "Write failed: %v\n", err)
		os.Exit(1)
	}
}

// recordFromArgs reads eight positional values, or else requires every named field flag.
func recordFromArgs(fs *flag.FlagSet, named [models.NumFeatures]float64) (models.HealthRecord, error) {
	if fs.NArg() > 0 {
		return models.ParseHealthRecord(fs.Args())
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	var missing []string
	for _, name := range models.FieldNames {
		if !set[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return models.HealthRecord{}, fmt.Errorf("%w: missing %s", models.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return models.NewHealthRecord(named[:])
}

type statusResponse struct {
	Version string     `json:"version"`
	Status  app.Status `json:"status"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = load in-process)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])
	format := parseFormat(*outputFormat)

	var status app.Status
	if *serverURL != "" {
		var res statusResponse
		if err := getJSON(*serverURL+"/api/v1/status", &res); err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = res.Status
	} else {
		c, logger := loadContext(*configPath, false)
		defer logger.Sync()
		defer c.Close()
		status = c.Status()
	}
	if err := cli.WriteStatus(os.Stdout, status, format); err != nil {
		fmt.Fprintf(os.Stderr, "Write failed: %v\n", err)
		os.Exit(1)
	}
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

func postJSON(url string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func getJSON(url string, out interface{}) error {
	resp, err := httpClient.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("server returned %s: %s", resp.Status, e.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func printUsage() {
	fmt.Println(`gluco - Diabetes Q&A chatbot and risk estimator

Usage:
  gluco serve [flags]              Start the local HTTP API
  gluco ask [flags] <question>     Answer one question
  gluco chat [flags]               Interactive question session on stdin
  gluco predict [flags] [values]   Estimate diabetes risk from eight measurements
  gluco status [flags]             Show loaded corpus and model summary
  gluco version                    Show version
  gluco help                       Show this help

Serve Flags:
  --config string    Config file path (default: /usr/local/etc/gluco/config.yaml)
  --debug            Enable debug logging
  --watch            Reload when the corpus or model files change

Ask / Predict / Status Flags:
  --config string    Config file path
  --server string    Server URL; when set, the running server answers instead of loading in-process
  --output string    Output format: text or json (default: text)

Examples:
  gluco serve
  gluco ask "Apa itu diabetes?"
  gluco predict 2 150 85 30 100 32.0 0.6 45
  gluco predict --output json 1 85 66 29 0 26.6 0.351 31
  gluco status --server http://localhost:8501`)
}
