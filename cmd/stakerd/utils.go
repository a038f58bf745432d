// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/beevik/ntp"
	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakeledger/genesis"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/lvldb"
)

// devLaunchTime pins the devnet genesis so a persisted devnet reopens the same instance.
const devLaunchTime = 1735689600 // 2025-01-01T00:00:00Z

func initLogger(ctx *cli.Context) *slog.LevelVar {
	level := &slog.LevelVar{}
	level.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	log.SetDefault(log.NewLogger(log.NewHandler(os.Stderr, level, ctx.Bool(jsonLogsFlag.Name))))
	return level
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(devLaunchTime), nil
	}
	return genesis.Load(path)
}

func isDevnet(ctx *cli.Context) bool {
	return ctx.String(genesisFlag.Name) == ""
}

func instanceDirOf(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	return filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:])), nil
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	instanceDir, err := instanceDirOf(ctx, gene)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

func openMainDB(ctx *cli.Context, instanceDir string, readOnly bool) (*lvldb.LevelDB, error) {
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	fdCache := suggestFDCache()
	logger.Debug("fd cache", "n", fdCache)

	dir := filepath.Join(instanceDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: fdCache,
		ReadOnly:               readOnly,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open ledger database [%v]", dir)
	}
	return db, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 16 {
		sizeMB = 16
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		logger.Warn("failed to get fd limit", "err", err)
		return 64
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 1024 {
		return 1024
	}
	return n
}

// checkClockOffset warns when the local clock drifts enough to shift tick boundaries.
func checkClockOffset(tickInterval time.Duration) {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	if offset := resp.ClockOffset.Abs(); offset > tickInterval/2 {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(offset))
	}
}

// handleSignals returns a context canceled on interrupt or terminate.
// SIGHUP calls onHangup instead.
func handleSignals(onHangup func()) (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range ch {
			if sig == syscall.SIGHUP {
				logger.Info("got hangup, distributing now")
				onHangup()
				continue
			}
			logger.Info("exit for signal", "signal", sig)
			cancel()
			return
		}
	}()
	return ctx, func() {
		signal.Stop(ch)
		cancel()
	}
}

func defaultDataDir() string {
	home := homeDir()
	if home == "" {
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "org.vechain.stakeledger")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "org.vechain.stakeledger")
	default:
		return filepath.Join(home, ".org.vechain.stakeledger")
	}
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
