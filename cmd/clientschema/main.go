package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/hanpama/clientschema/internal/client"
	"github.com/hanpama/clientschema/internal/introspection"
	"github.com/hanpama/clientschema/internal/otel"
	"github.com/hanpama/clientschema/internal/schema"
)

const rootUsage = `clientschema — GraphQL introspection codec & tools

USAGE:
  clientschema <command> [flags]

COMMANDS:
  fetch            Introspect a remote GraphQL endpoint
  introspect       Emit the introspection result for an SDL schema
  sdl              Render SDL from an introspection result
  query            Print the introspection query
  help             Show help for any command
`

const fetchUsage = `fetch FLAGS:
  -endpoint <url>          GraphQL endpoint URL (required)
  -header <name:value>     Add a request header. Repeatable
  -timeout <duration>      Request timeout, e.g. 10s (default: 30s)
  -format <json|sdl>       Output format (default: json)
  -legacy-name <name>      Allow a non-standard identifier. Repeatable
  -out <file>              Write output to file (default: stdout)
  -otel.endpoint <addr>    OTLP collector endpoint
  -otel.service <name>     OpenTelemetry service name (default: clientschema)
`

const introspectUsage = `introspect FLAGS:
  -schema <file>  SDL schema file (required)
  -out <file>     Write introspection JSON to file (default: stdout)
`

const sdlUsage = `sdl FLAGS:
  -in <file>           Introspection JSON file (default: stdin)
  -legacy-name <name>  Allow a non-standard identifier. Repeatable
  -out <file>          Write SDL to file (default: stdout)
`

const queryUsage = `query FLAGS: (none)
  Prints the introspection query sent by fetch.
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("clientschema", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "fetch":
		return cmdFetch(cmdArgs)
	case "introspect":
		return cmdIntrospect(cmdArgs)
	case "sdl":
		return cmdSDL(cmdArgs)
	case "query":
		fmt.Print(introspection.Query)
		return nil
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "fetch":
		fmt.Print(fetchUsage)
	case "introspect":
		fmt.Print(introspectUsage)
	case "sdl":
		fmt.Print(sdlUsage)
	case "query":
		fmt.Print(queryUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdFetch(args []string) error {
	endpoint := ""
	timeout := 30 * time.Second
	format := "json"
	outFile := ""
	otelEndpoint := ""
	otelService := "clientschema"
	var headers stringListFlag
	var legacyNames stringListFlag

	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&endpoint, "endpoint", endpoint, "GraphQL endpoint URL")
	fs.Var(&headers, "header", "Add a request header")
	fs.DurationVar(&timeout, "timeout", timeout, "Request timeout")
	fs.StringVar(&format, "format", format, "Output format")
	fs.Var(&legacyNames, "legacy-name", "Allow a non-standard identifier")
	fs.StringVar(&outFile, "out", outFile, "Write output to file")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, fetchUsage)
		return err
	}
	if endpoint == "" {
		fmt.Fprint(os.Stderr, fetchUsage)
		return fmt.Errorf("-endpoint is required")
	}
	if format != "json" && format != "sdl" {
		return fmt.Errorf("unknown format %q", format)
	}

	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	copts := []client.Option{client.WithTimeout(timeout)}
	for _, h := range headers {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid header %q", h)
		}
		copts = append(copts, client.WithHeader(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])))
	}
	c := client.New(endpoint, copts...)

	doc, err := c.Introspect(context.Background())
	if err != nil {
		return fmt.Errorf("introspect %s: %w", endpoint, err)
	}

	if format == "sdl" {
		s, err := introspection.BuildClientSchema(doc, introspection.WithAllowedLegacyNames(legacyNames...))
		if err != nil {
			return fmt.Errorf("build client schema: %w", err)
		}
		return writeOutput(outFile, []byte(schema.Render(s)))
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(outFile, append(out, '\n'))
}

func cmdIntrospect(args []string) error {
	schemaFile := ""
	outFile := ""
	fs := flag.NewFlagSet("introspect", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "SDL schema file")
	fs.StringVar(&outFile, "out", outFile, "Write introspection JSON to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, introspectUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, introspectUsage)
		return fmt.Errorf("-schema is required")
	}

	sdl, err := os.ReadFile(schemaFile)
	if err != nil {
		return err
	}
	s, err := schema.BuildFromSDL(string(sdl))
	if err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}
	doc := introspection.FromSchema(s)
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(outFile, append(out, '\n'))
}

func cmdSDL(args []string) error {
	inFile := ""
	outFile := ""
	var legacyNames stringListFlag
	fs := flag.NewFlagSet("sdl", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&inFile, "in", inFile, "Introspection JSON file")
	fs.Var(&legacyNames, "legacy-name", "Allow a non-standard identifier")
	fs.StringVar(&outFile, "out", outFile, "Write SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, sdlUsage)
		return err
	}

	var raw []byte
	var err error
	if inFile == "" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(inFile)
	}
	if err != nil {
		return err
	}

	// Accept either the bare document or a {"data": {...}} response envelope.
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		raw = envelope.Data
	}
	var doc introspection.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode introspection result: %w", err)
	}

	s, err := introspection.BuildClientSchema(&doc, introspection.WithAllowedLegacyNames(legacyNames...))
	if err != nil {
		return fmt.Errorf("build client schema: %w", err)
	}
	return writeOutput(outFile, []byte(schema.Render(s)))
}

func writeOutput(outFile string, data []byte) error {
	if outFile == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outFile, data, 0644)
}
