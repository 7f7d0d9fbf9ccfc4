// Command bedrockmcp serves the Bedrock MCP tools over HTTP.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/bedrockmcp/mcp"
	"github.com/effective-security/bedrockmcp/mcp/transport/httptransport"
	"github.com/effective-security/bedrockmcp/pkg/config"
	"github.com/effective-security/bedrockmcp/pkg/hivemind"
	"github.com/effective-security/bedrockmcp/pkg/llms/bedrock"
	"github.com/effective-security/bedrockmcp/pkg/prompts"
	"github.com/effective-security/xlog"
	flag "github.com/spf13/pflag"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/bedrockmcp/cmd", "bedrockmcp")

var version = "1.0.0"

const shutdownTimeout = 15 * time.Second

func main() {
	var (
		configPath  = flag.StringP("config", "c", os.Getenv("BEDROCK_MCP_CONFIG"), "Path to the configuration file")
		showVersion = flag.BoolP("version", "V", false, "Show version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("bedrockmcp version %s\n", version)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
	level, err := xlog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.WithMessagef(err, "invalid log level: %s", cfg.LogLevel)
	}
	xlog.SetGlobalLogLevel(level)

	srv, hive, err := newServer(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = hive.Close()
	}()

	tr := httptransport.NewHTTPTransport("/mcp", srv).
		WithAddr(cfg.ListenAddr).
		WithServiceInfo(cfg.Bedrock.Model, cfg.Bedrock.Region, hive)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		errs <- tr.Start(ctx)
	}()

	logger.KV(xlog.NOTICE,
		"status", "started",
		"service", httptransport.ServiceName,
		"addr", cfg.ListenAddr,
		"model", cfg.Bedrock.Model,
		"region", cfg.Bedrock.Region,
		"hive_mind", cfg.HiveMind.Driver,
	)

	select {
	case err = <-errs:
		return err
	case <-ctx.Done():
	}

	logger.KV(xlog.NOTICE, "status", "stopping")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = tr.Shutdown(sctx); err != nil {
		return errors.Wrap(err, "failed to shutdown")
	}
	return <-errs
}

func newServer(cfg *config.Config) (*mcp.Server, *hivemind.Adapter, error) {
	dial, err := hivemind.NewDialer(&cfg.HiveMind)
	if err != nil {
		return nil, nil, err
	}
	hive := hivemind.New(cfg.HiveMind.Driver, dial)

	assembler, err := prompts.NewAssembler(cfg.Prompt.Identity, cfg.Prompt.Template)
	if err != nil {
		return nil, nil, err
	}

	llm := bedrock.New(
		bedrock.WithRegion(cfg.Bedrock.Region),
		bedrock.WithModel(cfg.Bedrock.Model),
		bedrock.WithMaxTokens(cfg.Bedrock.MaxTokens),
		bedrock.WithAnthropicVersion(cfg.Bedrock.AnthropicVersion),
		bedrock.WithStaticCredentials(cfg.Bedrock.AccessKeyID, cfg.Bedrock.SecretAccessKey, cfg.Bedrock.SessionToken),
	)

	srv, err := mcp.NewServer(llm,
		mcp.WithContextProvider(hive, cfg.HiveMind.Limit),
		mcp.WithAssembler(assembler),
		mcp.WithStrictArguments(cfg.Tools.StrictArguments),
		mcp.WithReportErrors(cfg.Tools.ReportErrors),
		mcp.WithCallback(newCallback(cfg.Tools.Events, os.Stderr)),
	)
	if err != nil {
		return nil, nil, err
	}
	return srv, hive, nil
}

// newCallback returns the tool event sink for the mode
func newCallback(mode string, out io.Writer) mcp.Callback {
	switch mode {
	case config.EventsNone:
		return mcp.NewNoop()
	case config.EventsPrint, config.EventsVerbose:
		return mcp.NewFanout(
			mcp.NewPackageLogger(logger),
			mcp.NewPrinter(out, mode == config.EventsVerbose),
		)
	default:
		return mcp.NewPackageLogger(logger)
	}
}
