// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves command-line flags, environment variables and the
// optional config file into a types.Config.
//
// Precedence, highest first: flags, PDFIFY_* environment variables (a .env
// file in the working directory is loaded into the environment), the config
// file, then types.DefaultConfig.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfify/pkg/types"
)

// Keys shared by flags, environment variables and the config file.
const (
	KeyFiles           = "files"
	KeyOutput          = "output"
	KeyVerbose         = "verbose"
	KeyDeleteImages    = "dimages"
	KeyDeleteOriginal  = "doriginal"
	KeyDeleteProcessed = "dprocessed"
	KeyBrighten        = "brighten"
	KeyContrast        = "contrast"
	KeyWorkDir         = "workdir"
	KeyBackend         = "backend"
	KeyTool            = "tool"
	KeyProgress        = "progress"
	KeyVerify          = "verify"
	KeyManifest        = "manifest"
	KeyLogLevel        = "log-level"
)

const (
	envPrefix  = "PDFIFY"
	configName = "pdfify"
)

// ErrNoFiles is returned when no input image was given.
var ErrNoFiles = errors.New("at least one input image is required (--files)")

// SetDefaults registers every default from types.DefaultConfig on v.
func SetDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyBrighten, d.Brighten)
	v.SetDefault(KeyContrast, d.Contrast)
	v.SetDefault(KeyWorkDir, d.WorkDir)
	v.SetDefault(KeyBackend, string(d.Backend))
	v.SetDefault(KeyLogLevel, d.LogLevel)
}

// Load prepares v to read the environment and a config file. An explicit
// cfgFile must exist; otherwise pdfify.yaml is looked up in the working
// directory and in ~/.config/pdfify, and its absence is not an error. It
// returns the config file used, if any.
func Load(v *viper.Viper, cfgFile string) (string, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("loading .env: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return v.ConfigFileUsed(), nil
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", configName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Resolve builds the run configuration from v. Positional args are appended
// to the --files list. Brighten and contrast are not range-checked.
func Resolve(v *viper.Viper, args []string) (types.Config, error) {
	SetDefaults(v)

	var files []string
	for _, f := range append(v.GetStringSlice(KeyFiles), args...) {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return types.Config{}, &types.StageError{Stage: types.StageResolve, Op: "validate", Err: ErrNoFiles}
	}

	backend := types.ComposeBackend(strings.ToLower(v.GetString(KeyBackend)))
	if !backend.Valid() {
		return types.Config{}, &types.StageError{
			Stage: types.StageResolve,
			Op:    "validate",
			Err:   fmt.Errorf("unknown backend %q (want convert, pdfcpu or gofpdf)", backend),
		}
	}

	output := v.GetString(KeyOutput)
	if output == "" {
		output = types.DefaultOutput
	}

	return types.Config{
		Files:           files,
		Output:          output,
		Verbose:         v.GetBool(KeyVerbose),
		DeleteImages:    v.GetBool(KeyDeleteImages),
		DeleteOriginal:  v.GetBool(KeyDeleteOriginal),
		DeleteProcessed: v.GetBool(KeyDeleteProcessed),
		Brighten:        v.GetInt(KeyBrighten),
		Contrast:        v.GetFloat64(KeyContrast),
		WorkDir:         v.GetString(KeyWorkDir),
		Backend:         backend,
		Tool:            v.GetString(KeyTool),
		Progress:        v.GetBool(KeyProgress),
		Verify:          v.GetBool(KeyVerify),
		Manifest:        v.GetString(KeyManifest),
		LogLevel:        v.GetString(KeyLogLevel),
	}, nil
}
