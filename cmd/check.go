package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glexlang/glex/check"
	"github.com/glexlang/glex/internal"
	tt "github.com/glexlang/glex/internal/types"
)

var (
	ignoreKinds     string
	ignorePaths     string
	checkJsonOutput bool
	outPath         string
	watchMode       bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Scan GraphQL documents and report lexical errors",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := check.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize check engine", zap.Error(err))
		}

		if ignoreKinds != "" {
			for _, kind := range strings.Split(ignoreKinds, ",") {
				engine.IgnoreKind(strings.TrimSpace(kind))
			}
		}
		if ignorePaths != "" {
			for _, path := range strings.Split(ignorePaths, ",") {
				engine.IgnorePath(strings.TrimSpace(path))
			}
		}

		if watchMode {
			runWatch(logger, engine, args)
			return
		}
		runCheck(ctx, logger, engine, args, checkJsonOutput, outPath)
	},
}

func init() {
	checkCmd.Flags().StringVar(&ignoreKinds, "ignore", "", "Comma-separated list of error kinds to ignore")
	checkCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	checkCmd.Flags().BoolVar(&checkJsonOutput, "json", false, "Output issues in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	checkCmd.Flags().BoolVar(&watchMode, "watch", false, "Re-check documents whenever they change")
}

func runCheck(ctx context.Context, logger *zap.Logger, engine check.CheckEngine, paths []string, isJson bool, jsonOutput string) {
	issues, err := check.ProcessFiles(ctx, logger, engine, paths)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	printIssues(logger, issues, isJson, jsonOutput)

	if len(issues) > 0 {
		os.Exit(1)
	}
}

func runWatch(logger *zap.Logger, engine *internal.Engine, dirs []string) {
	err := engine.StartWatching(dirs, func(filename string, issues []tt.Issue) {
		if len(issues) == 0 {
			fmt.Printf("%s: ok\n", filename)
			return
		}
		printIssues(logger, issues, false, "")
	})
	if err != nil {
		logger.Fatal("Failed to start watching", zap.Error(err))
	}
	defer func() {
		if err := engine.StopWatching(); err != nil {
			logger.Error("Error stopping watcher", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
}

func printIssues(logger *zap.Logger, issues []tt.Issue, isJson bool, jsonOutput string) {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJson {
		// text output
		for _, filename := range sortedFiles {
			fileIssues := issuesByFile[filename]
			sourceCode, err := internal.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				continue
			}
			output := internal.FormatIssuesWithArrows(fileIssues, sourceCode)
			fmt.Println(output)
		}
		return
	}

	// JSON output
	d, err := json.Marshal(issuesByFile)
	if err != nil {
		logger.Error("Error marshalling issues to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return
	}
	f, err := os.Create(jsonOutput)
	if err != nil {
		logger.Error("Error creating JSON output file", zap.Error(err))
		return
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
