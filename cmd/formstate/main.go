package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formstate/internal/config"
	"github.com/goliatone/go-formstate/internal/mock"
	"github.com/goliatone/go-formstate/pkg/tui"
)

// app carries what every command needs. Tests preset driver and logger.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	driver    tui.PromptDriver
	auth      *mock.Auth
	transfers *mock.Transfers
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "formstate",
		Short:         "Fill and validate forms from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			if a.logger == nil {
				logCfg := zap.NewProductionConfig()
				if a.cfg.Verbose {
					logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
				}
				logger, err := logCfg.Build()
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				a.logger = logger
			}
			opts := []mock.Option{mock.WithDelay(a.cfg.Delay), mock.WithLogger(a.logger)}
			a.auth = mock.NewAuth(opts...)
			a.transfers = mock.NewTransfers(opts...)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfg.Output, "output", "o", a.cfg.Output, "output format: json, yaml, form or pretty")
	flags.DurationVar(&a.cfg.Delay, "delay", a.cfg.Delay, "simulated service latency")
	flags.IntVar(&a.cfg.MaxAttempts, "max-attempts", a.cfg.MaxAttempts, "times an invalid field is asked again")
	flags.BoolVarP(&a.cfg.Verbose, "verbose", "v", a.cfg.Verbose, "enable debug logging")

	root.AddCommand(
		newRunCmd(a),
		newOpenAPICmd(a),
		newLoginCmd(a),
		newRegisterCmd(a),
		newForgotPasswordCmd(a),
		newResetPasswordCmd(a),
		newProfileCmd(a),
		newVerifyOTPCmd(a),
		newSendCmd(a),
		newRequestCmd(a),
		newContactsCmd(a),
	)
	return root
}

func (a *app) renderer() (*tui.Renderer, error) {
	return tui.New(
		tui.WithPromptDriver(a.driver),
		tui.WithMaxAttempts(a.cfg.MaxAttempts),
		tui.WithLogger(a.logger),
	)
}

func (a *app) write(w io.Writer, v any) error {
	data, err := tui.Encode(v, tui.OutputFormat(a.cfg.Output))
	if err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(&app{cfg: cfg})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// requestTimeout bounds remote definition fetches.
const requestTimeout = 30 * time.Second
