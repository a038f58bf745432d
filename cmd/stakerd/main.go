// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakeledger/api"
	"github.com/vechain/stakeledger/api/admin"
	"github.com/vechain/stakeledger/api/admin/health"
	"github.com/vechain/stakeledger/builtin"
	"github.com/vechain/stakeledger/builtin/staker"
	"github.com/vechain/stakeledger/cmd/stakerd/httpserver"
	"github.com/vechain/stakeledger/distributor"
	"github.com/vechain/stakeledger/genesis"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/metrics"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "stakerd")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "stakerd",
		Usage:     "Staking ledger with periodic reward distribution",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			persistFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiSlowQueriesThresholdFlag,
			enableAPILogsFlag,
			enableAPIWritesFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
			skipClockCheckFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "inspect",
				Usage: "print the pool and the participants of a stored ledger",
				Flags: []cli.Flag{
					genesisFlag,
					dataDirFlag,
					cacheFlag,
					verbosityFlag,
				},
				Action: inspectAction,
			},
			{
				Name:   "dump-genesis",
				Usage:  "print the devnet genesis as YAML, a starting point for a custom one",
				Action: dumpGenesisAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	clk := gene.Clock()
	if !ctx.Bool(skipClockCheckFlag.Name) {
		go checkClockOffset(clk.Interval())
	}

	var (
		mainDB      *lvldb.LevelDB
		instanceDir string
	)
	if isDevnet(ctx) && !ctx.Bool(persistFlag.Name) {
		instanceDir = "Memory"
		if mainDB, err = lvldb.NewMem(); err != nil {
			return err
		}
	} else {
		if instanceDir, err = makeInstanceDir(ctx, gene); err != nil {
			return err
		}
		if mainDB, err = openMainDB(ctx, instanceDir, false); err != nil {
			return err
		}
	}
	defer func() { logger.Info("closing ledger database..."); mainDB.Close() }()

	ledger, err := gene.Apply(state.New(mainDB), clk)
	if err != nil {
		return errors.WithMessage(err, "apply genesis")
	}

	dist := distributor.New(ledger, clk, distributor.Options{
		Caller: thor.Address(gene.Owner),
		Asset:  builtin.Token.Address,
	})
	healthStatus := health.New(ledger)

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	var writes api.Writer
	if isDevnet(ctx) || ctx.Bool(enableAPIWritesFlag.Name) {
		writes = ledger
		logger.Warn("API serves unauthenticated writes under /transactions")
	}

	apiHandler, apiCloser := api.New(ledger, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		EnableReqLogger:      apiLogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		Distributions:        dist,
		Transactions:         writes,
		Asset:                builtin.Token.Address,
	})
	defer func() { logger.Info("closing API..."); apiCloser() }()

	apiURL, stopAPI, err := httpserver.StartAPIServer(
		ctx.String(apiAddrFlag.Name),
		apiHandler,
		gene.ID(),
		time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond,
	)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		url, stop, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); stop() }()
		metricsURL = url
	}

	adminURL := ""
	if ctx.Bool(enableAdminFlag.Name) {
		url, stop, err := httpserver.StartAdminServer(
			ctx.String(adminAddrFlag.Name),
			admin.New(logLevel, healthStatus, apiLogs, dist.Trigger),
		)
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); stop() }()
		adminURL = url
	}

	pool, err := ledger.Pool()
	if err != nil {
		return err
	}
	printStartupMessage(gene, pool, instanceDir, apiURL, metricsURL, adminURL)

	exitCtx, stopSignals := handleSignals(dist.Trigger)
	defer stopSignals()

	if err := dist.Run(exitCtx); err != nil {
		// the ledger stays readable so operators can inspect the halted state
		healthStatus.Halt(err)
		logger.Crit("distribution halted, serving read only until exit", "err", err)
		<-exitCtx.Done()
	}
	return nil
}

func inspectAction(ctx *cli.Context) error {
	initLogger(ctx)

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	instanceDir, err := instanceDirOf(ctx, gene)
	if err != nil {
		return err
	}
	mainDB, err := openMainDB(ctx, instanceDir, true)
	if err != nil {
		return err
	}
	defer mainDB.Close()

	ledger := builtin.Staker.WithState(state.New(mainDB), gene.Clock())
	pool, err := ledger.Pool()
	if err != nil {
		return err
	}
	if pool.Asset.IsZero() {
		return errors.Errorf("no ledger in %v", instanceDir)
	}
	positions, err := ledger.Participants()
	if err != nil {
		return err
	}
	fmt.Print(formatInspect(pool, positions))
	return nil
}

func dumpGenesisAction(*cli.Context) error {
	data, err := genesis.NewDevnet(devLaunchTime).Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func printStartupMessage(gene *genesis.Genesis, pool *staker.Pool, instanceDir, apiURL, metricsURL, adminURL string) {
	fmt.Printf(`Starting %v
    Genesis     [ %v ]
    Owner       [ %v ]
    Asset       [ %v ]
    Ticks       [ every %v, current #%v, last distribution #%v ]
    Instance dir[ %v ]
    API portal  [ %v ]
    Metrics     [ %v ]
    Admin       [ %v ]
`,
		"stakerd "+fullVersion(),
		gene.ID(),
		thor.Address(gene.Owner),
		pool.Asset,
		gene.Clock().Interval(), pool.CurrentTick, pool.LastDistributionTick,
		instanceDir,
		apiURL,
		orDisabled(metricsURL),
		orDisabled(adminURL),
	)
}

func orDisabled(url string) string {
	if url == "" {
		return "Disabled"
	}
	return url
}

func formatInspect(pool *staker.Pool, positions []*staker.Position) string {
	var b strings.Builder
	row := func(name string, v any) { fmt.Fprintf(&b, "%-16s%v\n", name, v) }
	row("asset", pool.Asset)
	row("minter", pool.Minter)
	row("rate per tick", pool.RatePerTick)
	row("last tick", pool.LastDistributionTick)
	row("total principal", pool.TotalPrincipal)
	row("total shares", pool.TotalShares)
	row("undistributed", pool.Undistributed)
	row("custody", pool.Custody)
	row("participants", pool.Participants)
	for _, p := range positions {
		fmt.Fprintf(&b, "  %v principal=%v shares=%v accrued=%v\n", p.Participant, p.Principal, p.Shares, p.Accrued)
	}
	return b.String()
}
