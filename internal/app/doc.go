// Package app is the composition root for CreaHut.
//
// # Overview
//
// Run loads the environment and configuration, opens the diagnostics log,
// builds the image client and hands everything to the Bubble Tea UI. It
// blocks until the user quits or the context is cancelled.
//
// # Startup Order
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.LoadEnv()    Read .env without overriding the shell
//	       ├─────> config.Load()       Read ~/.config/creahut/config.toml
//	       ├─────> diag.Open()         Append to the diagnostics log
//	       ├─────> imagegen.NewClient() Image endpoint client
//	       ├─────> prefs.Load()        Saved theme
//	       └─────> ui.Run()            TUI and placeholder rotation (blocks)
//
// # Error Handling
//
// Returned from Run:
//   - An explicit .env path that cannot be read
//   - A config file that exists but cannot be read or parsed
//   - A diagnostics log that cannot be opened
//   - An endpoint that cannot be parsed
//
// Not returned: a missing API key. The credential is read each time a request
// is made, so exporting it later fixes the next submission. Until then every
// submission fails and is recorded in the diagnostics log only.
//
// # Usage Example
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		fmt.Fprintf(os.Stderr, "creahut: %v\n", err)
//		os.Exit(1)
//	}
package app
