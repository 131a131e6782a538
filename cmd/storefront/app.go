package main

import (
	"context"
	"fmt"
	"io"

	"kloth-be/internal/config"
	"kloth-be/internal/logger"
	"kloth-be/internal/storefront"

	"go.uber.org/zap"
)

// app holds the storefront session opened for one command.
type app struct {
	client *storefront.HTTPClient
	kv     *storefront.SQLiteKV
	cart   *storefront.Cart
	ctrl   *storefront.Controller
	notify storefront.Notifier
}

type options struct {
	apiURL   string
	cartPath string
	verbose  bool
}

func openApp(ctx context.Context, cfg *config.Config, opts options, errOut io.Writer) (*app, error) {
	if opts.verbose {
		logger.Init(cfg.AppEnv)
	} else {
		logger.Replace(zap.NewNop())
	}
	log := logger.Named("storefront")

	kv, err := storefront.OpenSQLiteKV(ctx, opts.cartPath)
	if err != nil {
		return nil, fmt.Errorf("open cart storage: %w", err)
	}

	var notify storefront.Notifier = storefront.NewWriterNotifier(errOut)
	if opts.verbose {
		notify = storefront.Notifiers{notify, storefront.NewLogNotifier(log)}
	}

	cart, err := storefront.LoadCart(ctx, kv)
	if err != nil {
		// an unreadable cart starts empty
		log.Warn("cart load failed", zap.Error(err))
		notify.Error("Could not read saved cart")
	}

	client := storefront.NewHTTPClient(opts.apiURL, cfg.HTTPTimeout)
	ctrl := storefront.NewController(client, cart, notify, log, cfg.FilterDebounce)

	return &app{client: client, kv: kv, cart: cart, ctrl: ctrl, notify: notify}, nil
}

func (a *app) Close() error {
	a.ctrl.Unmount()
	logger.Sync()
	return a.kv.Close()
}
