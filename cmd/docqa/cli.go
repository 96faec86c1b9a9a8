package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/qa"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Collections docqa.CollectionService
	Manager     *qa.Manager
	Answerer    docqa.Answerer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose         bool   `short:"v" help:"Log fetches and index operations to stderr"`
	DataDir         string `name:"data-dir" env:"DOCQA_DATA_DIR" help:"Directory for cached pages and indexes (default ~/.docqa)"`
	Store           string `enum:"fs,sqlite,redis" default:"fs" env:"DOCQA_STORE" help:"Index storage backend (fs, sqlite, redis)"`
	RedisURL        string `name:"redis-url" env:"DOCQA_REDIS_URL" help:"Redis URL for the redis store"`
	CollectionsFile string `name:"collections" env:"DOCQA_COLLECTIONS" help:"YAML file mapping collection keys to document URLs"`

	Ask         AskCmd         `cmd:"" help:"Answer a question from a collection's release notes"`
	Build       BuildCmd       `cmd:"" help:"Build the index for a collection"`
	Warmup      WarmupCmd      `cmd:"" help:"Ensure an index for every collection"`
	Sections    SectionsCmd    `cmd:"" help:"List the section headings of a collection"`
	Collections CollectionsCmd `cmd:"" help:"List configured collections"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Collection string `arg:"" help:"Collection key, e.g. RelativityOne"`
	Question   string `arg:"" help:"Question to answer"`
	TopK       int    `name:"top-k" short:"k" default:"5" help:"Number of sections to consider"`
	JSON       bool   `name:"json" help:"Print the answer as JSON"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Collection string `arg:"" help:"Collection key"`
	Force      bool   `short:"f" help:"Rebuild even if an index exists"`
}

// WarmupCmd is the "warmup" subcommand.
type WarmupCmd struct {
	Force bool `short:"f" help:"Rebuild every index"`
}

// SectionsCmd is the "sections" subcommand.
type SectionsCmd struct {
	Collection string `arg:"" help:"Collection key"`
	JSON       bool   `name:"json" help:"Print sections as JSON"`
}

// CollectionsCmd is the "collections" subcommand.
type CollectionsCmd struct{}
