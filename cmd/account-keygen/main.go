package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"aim-chat/account-sdk/internal/config"
	"aim-chat/account-sdk/internal/keygen"
	"aim-chat/account-sdk/internal/platform/metrics"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("account-keygen", flag.ContinueOnError)
	global.SetOutput(stderr)
	showVersion := global.Bool("version", false, "print version and exit")
	configPath := global.String("config", "", "Path to keygen.yaml (optional)")
	global.Usage = func() {
		fmt.Fprintln(stderr, "usage: account-keygen [-config path] <new|restore|pubkey> [flags]")
		global.PrintDefaults()
	}
	if err := global.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "account-keygen version=%s commit=%s build_date=%s\n", version, commit, buildDate)
		return 0
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	cfg, err := config.LoadFromPath(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "account-keygen: %v\n", err)
		return 1
	}
	logger := cfg.Logger(stderr)
	m := metrics.New()
	svc := keygen.NewService(logger, m)

	var out any
	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "new":
		out, err = runNew(svc, cfg, rest, stderr)
	case "restore":
		out, err = runRestore(svc, rest, stderr)
	case "pubkey":
		out, err = runPubkey(svc, rest, stderr)
	default:
		fmt.Fprintf(stderr, "account-keygen: unknown command %q\n", cmd)
		global.Usage()
		return 2
	}
	if cfg.MetricsTextfile != "" {
		if werr := m.WriteTextfile(cfg.MetricsTextfile); werr != nil {
			logger.Warn("write metrics textfile failed", "path", cfg.MetricsTextfile, "error", werr)
		}
	}
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		logger.Error("command failed", "command", cmd, "error", err)
		return 1
	}
	if err := printResult(stdout, cfg.Output, out); err != nil {
		logger.Error("write output failed", "error", err)
		return 1
	}
	return 0
}

func runNew(svc *keygen.Service, cfg config.Config, args []string, stderr io.Writer) (any, error) {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	fs.SetOutput(stderr)
	withMnemonic := fs.Bool("mnemonic", false, "derive the account from a fresh BIP-39 mnemonic")
	words := fs.Int("words", 0, "mnemonic length: 12 or 24 (default from config)")
	passphrase := fs.String("passphrase", "", "optional BIP-39 passphrase")
	showSecret := fs.Bool("show-secret", false, "print the base58 secret key")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	bits := 0
	if *withMnemonic {
		bits = cfg.MnemonicBits
		switch *words {
		case 0:
		case 12:
			bits = 128
		case 24:
			bits = 256
		default:
			return nil, fmt.Errorf("words must be 12 or 24, got %d", *words)
		}
	}
	return svc.Generate(bits, *passphrase, *showSecret)
}

func runRestore(svc *keygen.Service, args []string, stderr io.Writer) (any, error) {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var in keygen.RestoreInput
	fs.StringVar(&in.SecretKey, "secret-key", "", "64-byte secret key as base58, hex or JSON byte array")
	fs.StringVar(&in.Seed, "seed", "", "32-byte seed as base58, hex or JSON byte array")
	fs.StringVar(&in.Mnemonic, "mnemonic", "", "BIP-39 mnemonic")
	fs.StringVar(&in.Passphrase, "passphrase", "", "optional BIP-39 passphrase")
	showSecret := fs.Bool("show-secret", false, "print the base58 secret key")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return svc.Restore(in, *showSecret)
}

func runPubkey(svc *keygen.Service, args []string, stderr io.Writer) (any, error) {
	fs := flag.NewFlagSet("pubkey", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verify := fs.String("verify", "", "base58 public key to check")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	raw := *verify
	switch {
	case raw != "" && fs.NArg() == 0:
	case raw == "" && fs.NArg() == 1:
		raw = fs.Arg(0)
	default:
		return nil, fmt.Errorf("pubkey expects exactly one base58 public key")
	}
	return svc.InspectPublicKey(raw)
}

func printResult(w io.Writer, format string, v any) error {
	if format == config.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	switch r := v.(type) {
	case keygen.Result:
		fmt.Fprintf(w, "pubkey: %s\n", r.PublicKey)
		if r.SecretKey != "" {
			fmt.Fprintf(w, "secret: %s\n", r.SecretKey)
		}
		if r.Mnemonic != "" {
			fmt.Fprintf(w, "mnemonic: %s\n", r.Mnemonic)
		}
	case keygen.PublicKeyInfo:
		fmt.Fprintf(w, "pubkey: %s\nhex: %s\non_curve: %t\n", r.PublicKey, r.Hex, r.OnCurve)
	default:
		return fmt.Errorf("unexpected result type %T", v)
	}
	return nil
}
