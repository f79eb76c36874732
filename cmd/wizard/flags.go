package main

import (
	"github.com/aretw0/wizard/internal/cli"
	"github.com/spf13/cobra"
)

// addStoreFlags registers the repository flags shared by run and session.
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("store", cli.StoreFile, "Answer store: file, redis or memory")
	cmd.Flags().String("store-dir", "", "Directory of the file store (default .wizard/answers)")
	cmd.Flags().String("redis-addr", envOr("WIZARD_REDIS_ADDR", ""), "Redis address for --store redis [$WIZARD_REDIS_ADDR]")
	cmd.Flags().String("redis-password", envOr("WIZARD_REDIS_PASSWORD", ""), "Redis password [$WIZARD_REDIS_PASSWORD]")
	cmd.Flags().Int("redis-db", 0, "Redis database")
	cmd.Flags().Duration("ttl", 0, "Expire stored sessions after this long (redis only)")
	cmd.Flags().String("encrypt-key", envOr("WIZARD_ENCRYPTION_KEY", ""), "Encrypt stored answers with this 32 byte key, hex or base64 [$WIZARD_ENCRYPTION_KEY]")
	cmd.Flags().StringSlice("fallback-key", nil, "Older keys still accepted for decryption")
	cmd.Flags().StringSlice("redact", nil, "Regex of answer names never written to the store")
}

func storeOptions(cmd *cobra.Command) cli.StoreOptions {
	kind, _ := cmd.Flags().GetString("store")
	dir, _ := cmd.Flags().GetString("store-dir")
	addr, _ := cmd.Flags().GetString("redis-addr")
	password, _ := cmd.Flags().GetString("redis-password")
	db, _ := cmd.Flags().GetInt("redis-db")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	key, _ := cmd.Flags().GetString("encrypt-key")
	fallbacks, _ := cmd.Flags().GetStringSlice("fallback-key")
	redact, _ := cmd.Flags().GetStringSlice("redact")

	return cli.StoreOptions{
		Kind:          kind,
		Dir:           dir,
		RedisAddr:     addr,
		RedisPassword: password,
		RedisDB:       db,
		TTL:           ttl,
		EncryptionKey: key,
		FallbackKeys:  fallbacks,
		Redact:        redact,
	}
}

// addResolverFlags registers the function resolution flags.
func addResolverFlags(cmd *cobra.Command) {
	cmd.Flags().String("resolver-url", envOr("WIZARD_RESOLVER_URL", ""), "Base URL of a wizard function server [$WIZARD_RESOLVER_URL]")
	cmd.Flags().Duration("min-interval", 0, "Minimum spacing between function server calls")
	cmd.Flags().String("functions", "", "YAML or JSON file of allow-listed command functions")
}

func resolverOptions(cmd *cobra.Command) cli.ResolverOptions {
	url, _ := cmd.Flags().GetString("resolver-url")
	interval, _ := cmd.Flags().GetDuration("min-interval")
	functions, _ := cmd.Flags().GetString("functions")
	return cli.ResolverOptions{URL: url, MinInterval: interval, FunctionsPath: functions}
}

func debugFlag(cmd *cobra.Command) bool {
	debug, _ := cmd.Flags().GetBool("debug")
	return debug
}
