// Package rhchat wires the request pipeline, notification dispatcher, local
// store and session into the rhchat command.
package rhchat

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rhchat/rhchat-desktop/config"
	"github.com/rhchat/rhchat-desktop/exchange"
	"github.com/rhchat/rhchat-desktop/flags"
	"github.com/rhchat/rhchat-desktop/input"
	"github.com/rhchat/rhchat-desktop/logging"
	"github.com/rhchat/rhchat-desktop/notification"
	"github.com/rhchat/rhchat-desktop/session"
	"github.com/rhchat/rhchat-desktop/store"
	"github.com/rhchat/rhchat-desktop/version"
)

const requestIDHeader = "X-Request-Id"

func Main() error {
	args, flagSet, options, err := flags.Parse(os.Args)
	if err != nil {
		return err
	}

	if options.Help {
		flagSet.PrintUsage(os.Stdout)
		printCommands(os.Stdout)
		return nil
	}
	if options.Version {
		fmt.Printf("rhchat %s\n", version.Current())
		return nil
	}
	if options.Licenses {
		version.PrintLicenses(os.Stdout)
		return nil
	}
	if len(args) == 0 {
		flagSet.PrintUsage(os.Stderr)
		printCommands(os.Stderr)
		return errors.New("COMMAND is required")
	}

	configPath := options.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.ApplyDefaults()
	if options.LogLevel != "" {
		cfg.Log.Level = options.LogLevel
	}

	logger := logging.New(os.Stderr, cfg.Log.Level)
	dispatcher := notification.NewDispatcher(
		notification.WithTitle(cfg.Notification.Title),
		notification.WithLogger(logger),
	)
	a, err := newApp(cfg, options, dispatcher, logger, stdio{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = a.run(ctx, args)
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		flagSet.PrintUsage(os.Stderr)
		printCommands(os.Stderr)
	}
	return err
}

func printCommands(w io.Writer) {
	fmt.Fprint(w, `
Commands:
  request [METHOD] PATH [ITEM...]   send a request through the pipeline
  notify BODY...                    show a desktop notification (see --icon)
  store get|set|delete|keys [KEY] [VALUE]
                                    read or change the local store
  login USER                        sign in, prompting for the password
  logout                            sign out
  tray                              open the tray menu
`)
}

type stdio struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

type notifier interface {
	Send(ctx context.Context, content notification.Content) error
}

// app is the composition root: one client, one store, one session and one
// dispatcher per process.
type app struct {
	config     *config.Config
	options    *flags.OptionSet
	logger     log.Logger
	client     *exchange.Client
	store      *store.Store
	session    *session.Session
	dispatcher notifier
	stdio      stdio

	askPassword func() (string, error)
}

func newApp(cfg *config.Config, options *flags.OptionSet, dispatcher notifier, logger log.Logger, streams stdio) (*app, error) {
	client, err := exchange.NewClient(exchange.Options{
		BaseURL:         cfg.API.BaseURL,
		ConnectTimeout:  time.Duration(cfg.HTTP.ConnectTimeoutMillis) * time.Millisecond,
		MaxRedirections: cfg.HTTP.MaxRedirections,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	st := store.New(cfg.Store.Path)
	sess := session.New(client, st, session.Endpoints{
		Login:  cfg.API.Login,
		Logout: cfg.API.Logout,
	})

	client.
		AddRequestInterceptor(requestID).
		AddRequestInterceptor(sess.Interceptor()).
		AddResponseInterceptor(logResponse(logger))

	return &app{
		config:      cfg,
		options:     options,
		logger:      logger,
		client:      client,
		store:       st,
		session:     sess,
		dispatcher:  dispatcher,
		stdio:       streams,
		askPassword: flags.AskPassword,
	}, nil
}

// requestID tags each call with a fresh X-Request-Id unless one is set.
func requestID(config exchange.RequestConfig) exchange.RequestConfig {
	if _, ok := config.Header[requestIDHeader]; ok {
		return config
	}
	header := make(map[string]string, len(config.Header)+1)
	for name, value := range config.Header {
		header[name] = value
	}
	header[requestIDHeader] = uuid.NewString()
	config.Header = header
	return config
}

func logResponse(logger log.Logger) exchange.ResponseInterceptor {
	logger = log.With(logger, "component", "exchange")
	return func(resp *exchange.Response) *exchange.Response {
		level.Debug(logger).Log("msg", "response", "status", resp.StatusCode, "url", resp.URL, "bytes", len(resp.Body))
		return resp
	}
}
