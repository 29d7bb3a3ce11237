package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/bimakw/wallet-console/internal/application/services"
	"github.com/bimakw/wallet-console/internal/domain/repositories"
	"github.com/bimakw/wallet-console/internal/infrastructure/ethereum"
	"github.com/bimakw/wallet-console/internal/infrastructure/moralis"
	"github.com/bimakw/wallet-console/internal/presentation/terminal"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive console",
	Long: `Open the interactive console. The connected wallet is read from
WALLET_RPC_URL when set. Type an address to search it, Tab / Shift-Tab to
switch tabs, Enter to search immediately, Ctrl-G for the expanded view and
Esc or Ctrl-C to quit. Without a terminal on stdin each input line is a
search or a tab name.`,
	Args: cobra.NoArgs,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runConsole(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log, logFile)
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	chainData, err := moralis.Start(cfg.Moralis, logger)
	if err != nil {
		return err
	}
	defer moralis.Stop()

	var wallet repositories.WalletProvider
	if cfg.Wallet.RPCURL != "" {
		provider, err := ethereum.NewWalletProvider(ctx, cfg.Wallet, logger)
		if err != nil {
			logger.Warn("Running without a connected wallet", zap.Error(err))
		} else {
			defer provider.Close()
			wallet = provider
		}
	}

	clock := clockwork.NewRealClock()
	session := services.NewConsoleSession(services.SessionOptions{
		ID:       "terminal",
		Wallet:   wallet,
		Fetcher:  services.NewWalletDataService(chainData, clock, logger),
		Clock:    clock,
		Debounce: cfg.Console.Debounce,
		Logger:   logger,
	})
	defer session.Close()

	opts := terminal.Options{
		Session:        session,
		In:             os.Stdin,
		Out:            os.Stdout,
		Clock:          clock,
		TypingInterval: cfg.Console.TypingInterval,
		TitleInterval:  cfg.Console.TitleInterval,
		Preload:        cfg.Console.Preload,
		Width:          defaultWidth,
		Height:         defaultHeight,
		Logger:         logger,
	}

	stdin := int(os.Stdin.Fd())
	if !term.IsTerminal(stdin) {
		return terminal.New(opts).RunLines(ctx)
	}

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		opts.Width = w
		opts.Height = h - 10
	}

	state, err := term.MakeRaw(stdin)
	if err != nil {
		logger.Warn("Falling back to line mode", zap.Error(err))
		return terminal.New(opts).RunLines(ctx)
	}
	defer term.Restore(stdin, state)

	opts.Raw = true
	return terminal.New(opts).Run(ctx)
}
