package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/kgld-labs/goldbank/x/oraclesim"
	"github.com/kgld-labs/goldbank/x/token"
	"github.com/kgld-labs/goldbank/x/vault/keeper"
	vaulttypes "github.com/kgld-labs/goldbank/x/vault/types"
)

const (
	vaultAddr   = "goldbank-vault"
	tokenIssuer = "goldbank-mint"
)

// DemoCmd runs a scripted session against an in-memory vault so operators
// can watch the full deposit/swap/withdraw lifecycle and the metrics it
// produces.
func DemoCmd(home string, healthPort int) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted vault session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flagHome, err := cmd.Flags().GetString("home"); err == nil && flagHome != "" {
				home = flagHome
			}
			return runDemo(cmd, home, healthPort)
		},
	}
}

func runDemo(cmd *cobra.Command, home string, healthPort int) error {
	logger := log.NewLogger(os.Stderr)

	cfg, err := loadVaultConfig(home)
	if err != nil {
		return err
	}

	tok := token.New("KGLD", 8, tokenIssuer)
	if err := tok.Mint(tokenIssuer, vaultAddr, cfg.TokenFloat); err != nil {
		return err
	}

	nativeFeed := oraclesim.NewFeed(cfg.NativePrice)
	tokenFeed := oraclesim.NewFeed(cfg.TokenPrice)
	native := &loggingNative{logger: logger}

	k, err := keeper.NewKeeper(
		logger,
		vaultAddr,
		cfg.Params,
		tok,
		native,
		nativeFeed,
		tokenFeed,
		keeper.WithEmitter(&loggingEmitter{logger: logger}),
		keeper.WithMetrics(keeper.GetVaultMetrics()),
	)
	if err != nil {
		return err
	}

	hc := StartHealthCheckServer(healthPort, &vaultChecker{k: k})
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hc.Shutdown(ctx); err != nil {
			logger.Error("health server shutdown", "err", err)
		}
	}()

	const user = "demo-user"
	deposit := math.NewInt(10_000)

	if err := k.DepositNative(user, deposit); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deposited %s native, ledger balance %s, liability %s\n",
		deposit, k.NativeBalanceOf(user), k.AggregateLiability())

	tokenOut, err := k.SwapNativeForToken(user, math.NewInt(50))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "swapped 50 native for %s KGLD\n", tokenOut)

	if err := k.WithdrawNative(user, math.NewInt(1_000)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "withdrew 1000 native, ledger balance %s, pool %s\n",
		k.NativeBalanceOf(user), k.NativePool())

	stats := k.BankStats()
	fmt.Fprintf(cmd.OutOrStdout(), "deposits %d, withdrawals %d\n",
		stats.DepositCount, stats.WithdrawalCount)
	return nil
}

// vaultChecker adapts the keeper to the health server.
type vaultChecker struct {
	k *keeper.Keeper
}

func (c *vaultChecker) CheckNativeFeed() error {
	_, err := c.k.NativePrice()
	return err
}

func (c *vaultChecker) CheckTokenFeed() error {
	_, err := c.k.TokenPrice()
	return err
}

func (c *vaultChecker) IsPaused() bool { return c.k.IsPaused() }

func (c *vaultChecker) VaultStatus() VaultStatus {
	stats := c.k.BankStats()
	return VaultStatus{
		NativePool:         c.k.NativePool().String(),
		TokenPool:          c.k.TokenPool().String(),
		AggregateLiability: c.k.AggregateLiability().String(),
		Deposits:           stats.DepositCount,
		Withdrawals:        stats.WithdrawalCount,
	}
}

// loggingNative stands in for the native settlement layer in demo mode.
type loggingNative struct {
	logger log.Logger
}

func (n *loggingNative) Send(to string, amount math.Int) error {
	n.logger.Info("native transfer", "to", to, "amount", amount)
	return nil
}

// loggingEmitter writes vault events to the structured log.
type loggingEmitter struct {
	logger log.Logger
}

func (e *loggingEmitter) Emit(ev vaulttypes.Event) {
	attrs := make([]any, 0, len(ev.Attributes)*2)
	for _, a := range ev.Attributes {
		attrs = append(attrs, a.Key, a.Value)
	}
	e.logger.Info("event "+ev.Type, attrs...)
}
