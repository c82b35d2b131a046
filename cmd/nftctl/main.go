package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	inmemorycache "nftmarket/internal/adapters/outbound/cache/inmemory"
	"nftmarket/internal/application/dto"
	"nftmarket/internal/domain/policies"
	"nftmarket/internal/infrastructure/di"
	"nftmarket/internal/infrastructure/logging"
	apperrors "nftmarket/internal/shared_kernel/errors"

	"github.com/urfave/cli/v2"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("error: %v", err))
		os.Exit(1)
	}
}

var (
	mirrorURLFlag = &cli.StringFlag{
		Name:    "mirror-url",
		Usage:   "base url of the ledger mirror node REST API",
		Value:   "https://mainnet-public.mirrornode.hedera.com",
		EnvVars: []string{"MIRROR_NODE_URL"},
	}
	gatewayURLFlag = &cli.StringFlag{
		Name:    "ipfs-gateway",
		Usage:   "content gateway base url",
		Value:   "https://ipfs.io/ipfs/",
		EnvVars: []string{"IPFS_GATEWAY_URL"},
	}
	timeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "per-request upstream timeout",
		Value: 10 * time.Second,
	}
	aggregateTimeoutFlag = &cli.DurationFlag{
		Name:  "aggregate-timeout",
		Usage: "overall budget for one aggregation",
		Value: 60 * time.Second,
	}
	concurrencyFlag = &cli.IntFlag{
		Name:  "concurrency",
		Usage: "maximum in-flight metadata resolutions",
		Value: 8,
	}
	maxPagesFlag = &cli.IntFlag{
		Name:  "max-pages",
		Usage: "maximum number of listing pages to follow",
		Value: 1000,
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "log upstream warnings to stderr",
	}

	accountFlag = &cli.StringFlag{
		Name:     "account",
		Usage:    "ledger account id, e.g. 0.0.1001",
		Required: true,
	}
	itemErrorsFlag = &cli.StringFlag{
		Name:  "item-errors",
		Usage: "per-asset failure policy (skip, abort, collect)",
		Value: string(policies.ItemErrorSkip),
	}
	pageFailureFlag = &cli.StringFlag{
		Name:  "page-failure",
		Usage: "late page failure policy (discard, keep_partial)",
		Value: string(policies.PageFailureDiscard),
	}
	tokenFlag = &cli.StringFlag{
		Name:     "token",
		Usage:    "token id, e.g. 0.0.5",
		Required: true,
	}
	serialFlag = &cli.Int64Flag{
		Name:     "serial",
		Usage:    "serial number of the asset",
		Required: true,
	}
)

func newApp(stdout io.Writer, stderr io.Writer) *cli.App {
	var services di.LedgerServices

	app := cli.NewApp()
	app.Name = "nftctl"
	app.Usage = "inspect ledger-held game assets"
	app.Version = Version
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		mirrorURLFlag,
		gatewayURLFlag,
		timeoutFlag,
		aggregateTimeoutFlag,
		concurrencyFlag,
		maxPagesFlag,
		verboseFlag,
	}
	app.Before = func(c *cli.Context) error {
		level := "error"
		if c.Bool(verboseFlag.Name) {
			level = "warning"
		}
		logger, err := logging.New(level, "text", stderr)
		if err != nil {
			return err
		}

		services = di.BuildLedgerServices(di.LedgerOptions{
			MirrorNodeURL:        c.String(mirrorURLFlag.Name),
			IPFSGatewayURL:       c.String(gatewayURLFlag.Name),
			UpstreamHTTPTimeout:  c.Duration(timeoutFlag.Name),
			AggregateTimeout:     c.Duration(aggregateTimeoutFlag.Name),
			AggregateMaxPages:    c.Int(maxPagesFlag.Name),
			AggregateConcurrency: c.Int(concurrencyFlag.Name),
		}, inmemorycache.NewMetadataCache(1000, time.Hour), logger)
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:  "owned",
			Usage: "list every asset held by an account with resolved metadata",
			Flags: []cli.Flag{accountFlag, itemErrorsFlag, pageFailureFlag},
			Action: func(c *cli.Context) error {
				itemPolicy, appErr := policies.ParseItemErrorPolicy(c.String(itemErrorsFlag.Name))
				if appErr != nil {
					return commandError(appErr)
				}
				pagePolicy, appErr := policies.ParsePageFailurePolicy(c.String(pageFailureFlag.Name))
				if appErr != nil {
					return commandError(appErr)
				}

				output, appErr := services.Aggregator.Execute(c.Context, dto.AggregateOwnedAssetsCommand{
					AccountID:         c.String(accountFlag.Name),
					ItemErrorPolicy:   itemPolicy,
					PageFailurePolicy: pagePolicy,
				})
				if appErr != nil {
					return commandError(appErr)
				}
				return printJSON(c.App.Writer, output)
			},
		},
		{
			Name:  "asset",
			Usage: "resolve the metadata of a single asset",
			Flags: []cli.Flag{tokenFlag, serialFlag},
			Action: func(c *cli.Context) error {
				output, appErr := services.AssetDetail.Execute(c.Context, dto.GetAssetDetailQuery{
					TokenID:      c.String(tokenFlag.Name),
					SerialNumber: c.Int64(serialFlag.Name),
				})
				if appErr != nil {
					return commandError(appErr)
				}
				return printJSON(c.App.Writer, output)
			},
		},
	}

	return app
}

func commandError(appErr *apperrors.AppError) error {
	return fmt.Errorf("%s: %s", appErr.Code, appErr.Message)
}

func printJSON(out io.Writer, payload any) error {
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}
