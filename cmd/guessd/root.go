package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"okinoko-guess_reveal/chain"
	"okinoko-guess_reveal/config"
	"okinoko-guess_reveal/db"
	"okinoko-guess_reveal/log"
	"okinoko-guess_reveal/sdk"
)

var mlog = log.New("module", "guessd")

// app carries what every subcommand needs once the root has parsed flags.
type app struct {
	confPath string
	from     string
	cfg      *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "guessd",
		Short:         "Guess-and-reveal game node",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.confPath)
			if err != nil {
				return err
			}
			log.SetFileLog(cfg.Log)
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.confPath, "conf", "guessd.toml", "config file")
	root.PersistentFlags().StringVar(&a.from, "from", "", "sender address")

	root.AddCommand(
		a.createCmd(),
		a.commitCreatorCmd(),
		a.guessCmd(),
		a.revealCmd(),
		a.claimCmd(),
		a.isWinnerCmd(),
		a.getCmd(),
		a.winnersCmd(),
		a.hashCmd(),
		a.mineCmd(),
		a.depositCmd(),
		a.balanceCmd(),
		a.heightCmd(),
	)
	return root
}

// withChain opens the configured store for the duration of fn.
func (a *app) withChain(fn func(*chain.Chain) error) error {
	kv, err := db.NewDB(a.cfg.Store.DBOptions())
	if err != nil {
		return err
	}
	ch, err := chain.New(kv, "")
	if err != nil {
		kv.Close()
		return err
	}
	defer func() {
		if err := ch.Close(); err != nil {
			mlog.Error("close store", "err", err)
		}
	}()
	return fn(ch)
}

func (a *app) sender() (sdk.Address, error) {
	if a.from == "" {
		return "", errors.New("--from is required")
	}
	return sdk.Address(a.from), nil
}

func (a *app) asset(flag string) (sdk.Asset, error) {
	s := flag
	if s == "" {
		s = a.cfg.Game.Asset
	}
	as := sdk.Asset(s)
	if !as.Valid() {
		return "", errors.Errorf("unknown asset %q", s)
	}
	return as, nil
}
