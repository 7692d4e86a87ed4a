package rhchat

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rhchat/rhchat-desktop/exchange"
	"github.com/rhchat/rhchat-desktop/host"
	"github.com/rhchat/rhchat-desktop/input"
	"github.com/rhchat/rhchat-desktop/notification"
	"github.com/rhchat/rhchat-desktop/output"
	"github.com/rhchat/rhchat-desktop/tray"
)

func usageError(format string, args ...interface{}) error {
	u := input.UsageError(fmt.Sprintf(format, args...))
	return errors.WithStack(&u)
}

func (a *app) run(ctx context.Context, args []string) error {
	command, rest := args[0], args[1:]
	switch command {
	case "request":
		return a.request(ctx, rest)
	case "notify":
		return a.notify(ctx, rest)
	case "store":
		return a.storeCommand(rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "tray":
		return a.tray(ctx)
	default:
		return usageError("unknown command: %s", command)
	}
}

func (a *app) request(ctx context.Context, args []string) error {
	in, err := input.ParseArgs(args, a.stdio.in, &a.options.InputOptions)
	if err != nil {
		return err
	}
	config, err := in.RequestConfig()
	if err != nil {
		return err
	}

	outputOptions := &a.options.OutputOptions
	printer := output.NewPrinter(a.stdio.out, outputOptions)
	resp, err := a.client.Request(ctx, config)
	if err != nil {
		var httpErr *exchange.HTTPError
		if errors.As(err, &httpErr) {
			if printErr := output.PrintHTTPError(printer, httpErr, outputOptions); printErr != nil {
				return printErr
			}
		}
		return err
	}

	if outputOptions.Download {
		summary, err := output.NewFileWriter(resp.URL, outputOptions).Write(resp)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdio.err, summary)
		return nil
	}
	return output.Print(printer, resp, outputOptions)
}

func (a *app) notify(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("notify requires a message")
	}
	icon := notification.Info
	if a.options.Icon != "" {
		parsed, ok := notification.ParseIcon(a.options.Icon)
		if !ok {
			return usageError("unknown icon: %s", a.options.Icon)
		}
		icon = parsed
	}
	return a.dispatcher.Send(ctx, notification.Content{
		Icon: icon,
		Body: strings.Join(args, " "),
	})
}

func (a *app) storeCommand(args []string) error {
	if len(args) == 0 {
		return usageError("store requires one of get, set, delete or keys")
	}
	switch args[0] {
	case "get":
		if len(args) != 2 {
			return usageError("usage: store get KEY")
		}
		var value json.RawMessage
		found, err := a.store.Get(args[1], &value)
		if err != nil {
			return err
		}
		if !found {
			return errors.Errorf("no such key: %s", args[1])
		}
		fmt.Fprintln(a.stdio.out, string(value))
		return nil
	case "set":
		if len(args) != 3 {
			return usageError("usage: store set KEY VALUE")
		}
		if err := a.store.Set(args[1], storeValue(args[2])); err != nil {
			return err
		}
		return a.store.Save()
	case "delete":
		if len(args) != 2 {
			return usageError("usage: store delete KEY")
		}
		deleted, err := a.store.Delete(args[1])
		if err != nil {
			return err
		}
		if !deleted {
			return errors.Errorf("no such key: %s", args[1])
		}
		return a.store.Save()
	case "keys":
		keys, err := a.store.Keys()
		if err != nil {
			return err
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintln(a.stdio.out, key)
		}
		return nil
	default:
		return usageError("unknown store command: %s", args[0])
	}
}

// storeValue keeps JSON literals as they are and stores anything else as a
// string.
func storeValue(s string) interface{} {
	if json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	return s
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("usage: login USER")
	}
	password, err := a.askPassword()
	if err != nil {
		return err
	}
	info, err := a.session.Login(ctx, args[0], password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdio.out, "Logged in as %s\n", info.UserName)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	message, err := a.session.Logout(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdio.out, message)
	return nil
}

func (a *app) tray(ctx context.Context) error {
	process := &host.DeferredProcess{}
	menu := tray.New(tray.Deps{
		Window:   host.NewHeadlessWindow(a.logger),
		Process:  process,
		Session:  a.session,
		Notifier: a.dispatcher,
		Logger:   a.logger,
	})
	if err := tray.Run(ctx, menu, process.Requested); err != nil {
		return errors.Wrap(err, "running tray menu")
	}
	return process.Apply(host.OSProcess{})
}
