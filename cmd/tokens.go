package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glexlang/glex/lexer"
	"github.com/glexlang/glex/token"
)

var (
	tokensJsonOutput bool
	withComments     bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [files...]",
	Short: "Tokenize GraphQL documents and print the token stream",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file paths")
			os.Exit(1)
		}

		for _, path := range args {
			source, err := os.ReadFile(path)
			if err != nil {
				logger.Error("Error reading file", zap.String("file", path), zap.Error(err))
				continue
			}
			printTokens(path, lexer.Tokenize(string(source)))
		}
	},
}

func init() {
	tokensCmd.Flags().BoolVar(&tokensJsonOutput, "json", false, "Output tokens in JSON format")
	tokensCmd.Flags().BoolVar(&withComments, "comments", false, "Include comments recovered from the token chain")
}

// tokenRecord is the JSON shape of one token.
type tokenRecord struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Line  int    `json:"line"`
	Col   int    `json:"col"`
}

func printTokens(path string, tokens []*token.Token) {
	listed := tokens
	if withComments {
		listed = withCommentTokens(tokens)
	}

	if tokensJsonOutput {
		records := make([]tokenRecord, len(listed))
		for i, tok := range listed {
			records[i] = tokenRecord{Kind: tok.Kind.String(), Value: tok.Value, Line: tok.Line, Col: tok.Col}
		}
		d, err := json.Marshal(map[string][]tokenRecord{path: records})
		if err != nil {
			logger.Error("Error marshalling tokens to JSON", zap.Error(err))
			return
		}
		fmt.Println(string(d))
		return
	}

	fmt.Printf("%s:\n", path)
	for _, tok := range listed {
		fmt.Printf("  %d:%d\t%s\t%q\n", tok.Line, tok.Col, tok.Kind, tok.Value)
	}
}

// withCommentTokens rebuilds the emission order including comment tokens,
// which the primary sequence omits but the previous-token chain keeps.
func withCommentTokens(tokens []*token.Token) []*token.Token {
	if len(tokens) == 0 {
		return tokens
	}
	var all []*token.Token
	for tok := tokens[len(tokens)-1]; tok != nil; tok = tok.Previous() {
		all = append(all, tok)
	}
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all
}
