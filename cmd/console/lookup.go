package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/bimakw/wallet-console/internal/application/formatters"
	"github.com/bimakw/wallet-console/internal/application/services"
	"github.com/bimakw/wallet-console/internal/domain/entities"
	"github.com/bimakw/wallet-console/internal/infrastructure/moralis"
)

var (
	lookupChain string
	lookupTab   string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <address>",
	Short: "Print one console tab for an address",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringVar(&lookupChain, "chain", entities.PrimaryChainID, "chain id used for the balance and NFTs")
	lookupCmd.Flags().StringVar(&lookupTab, "tab", string(formatters.TabWallet), "tab to print (wallet.json, transactions.json, nfts.json)")
}

func runLookup(cmd *cobra.Command, args []string) error {
	address := args[0]
	if !entities.IsValidAddress(address) {
		return fmt.Errorf("invalid wallet address %q", address)
	}
	tab, err := formatters.ParseTab(lookupTab)
	if err != nil {
		return fmt.Errorf("%w: %s", err, lookupTab)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	output := logFile
	if output == "" {
		output = "stderr"
	}
	logger := setupLogger(cfg.Log, output)
	defer logger.Sync()

	chainData, err := moralis.Start(cfg.Moralis, logger)
	if err != nil {
		return err
	}
	defer moralis.Stop()

	data := services.NewWalletDataService(chainData, clockwork.NewRealClock(), logger)
	snapshot := data.Fetch(context.Background(), entities.NewSnapshotKey(address, lookupChain))

	fmt.Fprintln(os.Stdout, formatters.RenderTab(tab, snapshot, false))
	return nil
}
