package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"linkcheck/internal/linkcheck"
	"linkcheck/pkg/cache"
	"linkcheck/pkg/config"
	"linkcheck/pkg/secrets"
)

func main() {
	// .env first: the log level and the env-backed flag defaults below may
	// come from it
	dotenvErr := godotenv.Load()

	logger := linkcheck.Init(linkcheck.LogLevel())
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	// Panic guard to log stacktrace if app crashes
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic: application crashed",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			os.Exit(1)
		}
	}()

	if dotenvErr != nil && !os.IsNotExist(dotenvErr) {
		logger.Warn("can't load .env, continuing with the process environment", zap.Error(dotenvErr))
	}

	fileMasks := flag.String("FILE_MASKS", GetEnv("FILE_MASKS", "*.md"), "Comma-separated file masks.")
	lookupPath := flag.String("LOOKUP_PATH", GetEnv("LOOKUP_PATH", "."), "Directory to scan.")
	files := flag.String("FILES", GetEnv("FILES", ""), "Comma-separated files to check instead of scanning.")
	excludePaths := flag.String("EXCLUDE_PATHS", GetEnv("EXCLUDE_PATHS", ""), "Comma-separated paths to skip.")
	configPath := flag.String("CONFIG", GetEnv("LINKCHECK_CONFIG", ""), "Config file. Defaults to .linkcheck.toml in the scanned directory.")
	timeoutRaw := flag.String("TIMEOUT", GetEnv("TIMEOUT", "30s"), "Per-request HTTP timeout.")
	pat := flag.String("PAT", GetEnv("PAT", ""), "GitHub PAT for github.com.")
	corpPat := flag.String("CORP_PAT", GetEnv("CORP_PAT", ""), "GitHub PAT for the enterprise host.")
	corpURL := flag.String("CORP_URL", GetEnv("CORP_URL", ""), "Enterprise GitHub base URL.")
	vaultAddr := flag.String("VAULT_ADDR", GetEnv("VAULT_ADDR", ""), "Vault address for secret interpolation.")
	vaultToken := flag.String("VAULT_TOKEN", GetEnv("VAULT_TOKEN", ""), "Vault token.")
	vaultPath := flag.String("VAULT_PATH", GetEnv("VAULT_PATH", "secret/data/linkcheck"), "Vault KV path with interpolation values.")
	ddAPIKey := flag.String("DD_API_KEY", GetEnv("DD_API_KEY", ""), "DataDog API key.")
	ddAppKey := flag.String("DD_APP_KEY", GetEnv("DD_APP_KEY", ""), "DataDog application key.")
	cachePath := flag.String("CACHE_PATH", GetEnv("CACHE_PATH", ""), "Cache file location override.")
	noCache := flag.Bool("NO_CACHE", GetEnv("NO_CACHE", "") != "", "Disable the link cache.")
	dumpConfig := flag.Bool("dump-config", false, "Print the effective config as TOML and exit.")
	showVersion := flag.Bool("version", false, "Print version information and exit.")
	flag.Parse()

	if *showVersion {
		info, _ := json.Marshal(linkcheck.Version)
		fmt.Println(string(info))
		return
	}

	logger.Debug("Starting linkcheck", zap.String("version", linkcheck.Version.Version))

	timeout, err := time.ParseDuration(*timeoutRaw)
	if err != nil {
		logger.Error("invalid TIMEOUT", zap.String("value", *timeoutRaw), zap.Error(err))
		os.Exit(2)
	}

	rt := &linkcheck.Runtime{
		Dir:           *lookupPath,
		Files:         splitList(*files),
		FileMasks:     splitList(*fileMasks),
		ExcludePaths:  splitList(*excludePaths),
		ConfigPath:    *configPath,
		Timeout:       timeout,
		PAT:           *pat,
		CorpPAT:       *corpPat,
		CorpGitHubURL: *corpURL,
		VaultAddr:     *vaultAddr,
		VaultToken:    *vaultToken,
		VaultPath:     *vaultPath,
		DDAPIKey:      *ddAPIKey,
		DDAppKey:      *ddAppKey,
		CachePath:     *cachePath,
		NoCache:       *noCache,
	}

	lookup := secrets.Env()
	if rt.VaultAddr != "" && rt.VaultToken != "" {
		vaultSrc, err := secrets.NewVault(rt.VaultAddr, rt.VaultToken, rt.VaultPath, rt.Timeout, logger)
		if err != nil {
			logger.Error("can't set up the Vault lookup, interpolation falls back to the environment", zap.Error(err))
		} else {
			lookup = secrets.Chain(secrets.Env(), vaultSrc.Lookup)
		}
	}

	cfg, err := loadConfig(rt, lookup, logger)
	if err != nil {
		logger.Error("can't load config", zap.Error(err))
		os.Exit(2)
	}

	if *dumpConfig {
		out, err := config.Marshal(cfg)
		if err != nil {
			logger.Error("can't serialize config", zap.Error(err))
			os.Exit(2)
		}
		fmt.Print(string(out))
		return
	}

	var store *cache.Store
	if !rt.NoCache && cfg.CacheTTL() > 0 {
		store, err = openCache(rt.CachePath, cfg.CacheTTL())
		if err != nil {
			logger.Warn("can't open the link cache, continuing without it", zap.Error(err))
		} else {
			defer func() {
				_ = store.Close()
			}()
		}
	}

	validator := linkcheck.New(rt, cfg, store, logger)

	filesList, err := validator.GetFiles()
	if err != nil {
		logger.Error("Error generating file list", zap.Error(err))
		os.Exit(2)
	}

	stats := validator.ProcessFiles(context.Background(), filesList)
	linkcheck.Report(os.Stdout, stats)
	if stats.Failed() {
		os.Exit(1)
	}
}

// loadConfig resolves the config file: the explicit flag first, then
// dotfiles in the scanned directory, then the per-user config dir. No file
// anywhere means defaults.
func loadConfig(rt *linkcheck.Runtime, lookup config.Lookup, logger *zap.Logger) (*config.Config, error) {
	if rt.ConfigPath != "" {
		return config.LoadWith(rt.ConfigPath, lookup)
	}
	candidates := []string{
		filepath.Join(rt.Dir, ".linkcheck.toml"),
		filepath.Join(rt.Dir, ".linkcheck.yaml"),
	}
	if found, err := xdg.SearchConfigFile(filepath.Join("linkcheck", "config.toml")); err == nil {
		candidates = append(candidates, found)
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		logger.Debug("using config", zap.String("path", candidate))
		return config.LoadWith(candidate, lookup)
	}
	return config.Default(), nil
}

func openCache(path string, ttl time.Duration) (*cache.Store, error) {
	if path == "" {
		var err error
		path, err = cache.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return cache.Open(path, ttl)
}

func GetEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok {
		return strings.ReplaceAll(val, " ", "")
	}
	return defaultValue
}

// splitList turns a comma-separated flag value into a slice, dropping empty
// entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
