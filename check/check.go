// Package check runs the lexer over files and directories and collects
// lexical issues.
package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/glexlang/glex/internal"
	tt "github.com/glexlang/glex/internal/types"
	"github.com/glexlang/glex/scanner"
)

// CheckEngine is the part of the engine the pipeline needs.
type CheckEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte, filename string) []tt.Issue
	IgnoreKind(kind string)
	IgnorePath(path string)
}

// New builds an engine from the configuration file at configurationPath.
// An empty path means defaults.
func New(configurationPath string) (*internal.Engine, error) {
	engine := internal.NewEngine()
	if configurationPath == "" {
		return engine, nil
	}

	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}
	for _, kind := range config.IgnoreKinds {
		engine.IgnoreKind(strings.TrimSpace(kind))
	}
	for _, path := range config.IgnorePaths {
		engine.IgnorePath(strings.TrimSpace(path))
	}
	return engine, nil
}

// ProcessSources checks in-memory documents.
func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine CheckEngine,
	sources [][]byte,
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		select {
		case <-ctx.Done():
			return allIssues, ctx.Err()
		default:
		}
		issues := engine.RunSource(source, fmt.Sprintf("source-%d", i))
		allIssues = append(allIssues, issues...)
	}
	return allIssues, nil
}

// ProcessFiles checks every path, recursing into directories.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine CheckEngine,
	paths []string,
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return allIssues, err
		}
		allIssues = append(allIssues, issues...)
	}
	return allIssues, nil
}

// ProcessPath checks one file or directory. Directories are processed
// with a bounded worker pool and a progress bar.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine CheckEngine,
	path string,
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !HasDesiredExtension(path) {
			return nil, nil
		}
		return engine.Run(path)
	}

	found, err := scanner.New(path).Scan()
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(found),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	resultChan := make(chan []tt.Issue, len(found))
	errorChan := make(chan error, len(found))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	started := 0
	for _, file := range found {
		select {
		case <-ctx.Done():
			return drain(resultChan, started), ctx.Err()
		default:
		}
		sem <- struct{}{}
		started++
		go func(fp string) {
			defer func() { <-sem }()

			fileIssues, err := engine.Run(fp)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				errorChan <- err
				resultChan <- nil
			} else {
				resultChan <- fileIssues
				errorChan <- nil
			}
			bar.Add(1)
		}(file.Path)
	}

	var issues []tt.Issue
	for i := 0; i < started; i++ {
		err := <-errorChan
		result := <-resultChan
		if err != nil {
			continue
		}
		if result != nil {
			issues = append(issues, result...)
		}
	}
	fmt.Println()
	return issues, nil
}

// drain collects whatever results finished before cancellation.
func drain(resultChan chan []tt.Issue, started int) []tt.Issue {
	var issues []tt.Issue
	for {
		select {
		case result := <-resultChan:
			if result != nil {
				issues = append(issues, result...)
			}
			started--
			if started == 0 {
				return issues
			}
		default:
			return issues
		}
	}
}

var desiredExtensions = map[string]bool{
	".graphql":  true,
	".gql":      true,
	".graphqls": true,
}

// HasDesiredExtension reports whether path looks like a GraphQL document.
func HasDesiredExtension(path string) bool {
	return desiredExtensions[strings.ToLower(filepath.Ext(path))]
}

// Config represents the checker configuration.
type Config struct {
	Name        string   `yaml:"name"`
	IgnoreKinds []string `yaml:"ignore-kinds"`
	IgnorePaths []string `yaml:"ignore-paths"`
}

// DefaultConfig is what `glex init` writes.
func DefaultConfig() Config {
	return Config{Name: "glex"}
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config

	f, err := os.Open(configurationPath)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
