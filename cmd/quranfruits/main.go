// Command quranfruits searches a Quranic verse table for fruit-related verses
// and reports how often each fruit is mentioned.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/quranfruits/internal/analyzer"
	"github.com/knowledge-engine/quranfruits/internal/config"
	"github.com/knowledge-engine/quranfruits/internal/logging"
	"github.com/knowledge-engine/quranfruits/internal/shell"
)

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Globals are flags shared by every command. Empty values fall back to the
// environment configuration.
type Globals struct {
	Corpus    string `name:"corpus" short:"c" help:"Path to the verse table (CORPUS_PATH)" type:"path"`
	Lexicon   string `name:"lexicon" short:"l" help:"YAML fruit lexicon; built-in when unset (LEXICON_PATH)" type:"path"`
	Delimiter string `name:"delimiter" help:"Field delimiter of the verse table (CORPUS_DELIMITER)"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn, error (LOG_LEVEL)"`
	LogFormat string `name:"log-format" help:"Log format: text or json (LOG_FORMAT)"`
}

// CLI defines the command-line interface for quranfruits.
type CLI struct {
	Globals

	Shell     ShellCmd     `cmd:"" default:"1" help:"Interactive menu (default)"`
	Search    SearchCmd    `cmd:"" help:"Print verses related to a word"`
	Frequency FrequencyCmd `cmd:"" help:"Print fruit mention counts"`
}

// loadConfig merges flags over the environment configuration.
func (g *Globals) loadConfig() *config.Config {
	cfg := config.Load()
	if g.Corpus != "" {
		cfg.Corpus.Path = g.Corpus
	}
	if g.Lexicon != "" {
		cfg.Lexicon.Path = g.Lexicon
	}
	if g.Delimiter != "" {
		cfg.Corpus.Delimiter = g.Delimiter
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	return cfg
}

// open loads the corpus and builds the index. Any error here is fatal.
func (g *Globals) open() (*analyzer.Analyzer, *config.Config, *logrus.Entry, error) {
	cfg := g.loadConfig()

	logger, err := logging.New(cfg.Log, stderr)
	if err != nil {
		return nil, nil, nil, err
	}
	entry := logger.WithField("service", "quranfruits")

	a, err := analyzer.Load(cfg, entry)
	if err != nil {
		entry.WithError(err).Error("Startup failed")
		return nil, nil, nil, err
	}
	return a, cfg, entry, nil
}

func resolveTopN(flag int, cfg *config.Config) (int, error) {
	topN := flag
	if topN == 0 {
		topN = cfg.Search.TopN
	}
	if topN <= 0 {
		return 0, fmt.Errorf("top-n must be positive, got %d", topN)
	}
	return topN, nil
}

// ShellCmd runs the interactive menu.
type ShellCmd struct {
	TopN int `name:"top-n" short:"n" help:"Verses shown per search (SEARCH_TOP_N)"`
}

func (c *ShellCmd) Run(g *Globals) error {
	a, cfg, entry, err := g.open()
	if err != nil {
		return err
	}
	topN, err := resolveTopN(c.TopN, cfg)
	if err != nil {
		return err
	}

	sh := shell.NewShell(a, stdin, stdout, entry.WithField("component", "shell"))
	sh.TopN = topN
	return sh.Run()
}

// SearchCmd prints the verses most similar to a query.
type SearchCmd struct {
	Query string `arg:"" help:"Word to search for"`
	TopN  int    `name:"top-n" short:"n" help:"Maximum verses to print (SEARCH_TOP_N)"`
}

func (c *SearchCmd) Run(g *Globals) error {
	a, cfg, _, err := g.open()
	if err != nil {
		return err
	}
	topN, err := resolveTopN(c.TopN, cfg)
	if err != nil {
		return err
	}

	results, err := a.FindRelatedVerses(c.Query, topN)
	if err != nil {
		return err
	}
	shell.PrintResults(stdout, results)
	return nil
}

// FrequencyCmd prints how often each lexicon category is mentioned.
type FrequencyCmd struct{}

func (c *FrequencyCmd) Run(g *Globals) error {
	a, _, _, err := g.open()
	if err != nil {
		return err
	}
	shell.PrintCounts(stdout, a.FruitFrequencies())
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("quranfruits"),
		kong.Description("Quranic Fruits Smart Analysis System"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
