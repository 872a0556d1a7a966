package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stockfeed/internal/app"
	"stockfeed/internal/config"
	"stockfeed/internal/export"
)

const usage = `usage: fetch [-config path] <command> [flags]

commands:
  search    -q text                       search tickers and attach quotes
  details   -symbols A,B,C                enrich known symbols
  favorites                               enrich the configured favorites
  history   -symbol S [-from D] [-to D] [-out file] [-format csv|json|parquet]
  news      -symbol S [-limit N]
`

func main() {
	log.SetFlags(0)

	var configPath string
	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config file (optional)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	a, err := app.InitializeApp(app.ConfigPath(configPath))
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "search":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		q := fs.String("q", "", "search text")
		_ = fs.Parse(args)
		stocks, err := a.Aggregator.SearchStocks(ctx, *q)
		if err != nil {
			log.Fatalf("search: %v", err)
		}
		printJSON(stocks)

	case "details":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		symbols := fs.String("symbols", getenv("SYMBOLS", ""), "comma-separated symbols")
		_ = fs.Parse(args)
		list := config.SplitCSV(*symbols)
		if len(list) == 0 {
			log.Fatal("details: -symbols is required")
		}
		stocks, err := a.Aggregator.EnrichDetails(ctx, list)
		if err != nil {
			log.Fatalf("details: %v", err)
		}
		printJSON(stocks)

	case "favorites":
		ov, err := a.Aggregator.Overview(ctx)
		if err != nil {
			log.Fatalf("favorites: %v", err)
		}
		if ov.Degraded() {
			a.Logger.Warn("favorites incomplete", "lookup_failed", ov.LookupFailed, "unpriced", ov.Unpriced)
		}
		printJSON(ov)

	case "history":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		symbol := fs.String("symbol", "", "ticker symbol")
		fromS := fs.String("from", "", "first day, YYYY-MM-DD (default: 30 days before -to)")
		toS := fs.String("to", "", "last day, YYYY-MM-DD (default: today)")
		out := fs.String("out", "", "write to file instead of stdout")
		format := fs.String("format", "", "csv, json or parquet (default: from -out extension)")
		_ = fs.Parse(args)

		to := time.Now().UTC()
		if *toS != "" {
			if to, err = time.Parse(time.DateOnly, *toS); err != nil {
				log.Fatalf("history: -to: %v", err)
			}
		}
		from := to.AddDate(0, 0, -30)
		if *fromS != "" {
			if from, err = time.Parse(time.DateOnly, *fromS); err != nil {
				log.Fatalf("history: -from: %v", err)
			}
		}

		bars, err := a.Aggregator.HistoryRange(ctx, *symbol, from, to)
		if err != nil {
			log.Fatalf("history: %v", err)
		}
		if *out == "" && *format == "" {
			printJSON(bars)
			return
		}
		rows := export.Rows(strings.ToUpper(strings.TrimSpace(*symbol)), bars)
		if *out == "" {
			w := export.New(*format)
			if w == nil {
				log.Fatalf("history: unsupported format %q", *format)
			}
			if err := w.Write(os.Stdout, rows); err != nil {
				log.Fatalf("history: %v", err)
			}
			return
		}
		w, err := export.ForPath(*out, *format)
		if err != nil {
			log.Fatalf("history: %v", err)
		}
		if err := export.Save(*out, w, rows); err != nil {
			log.Fatalf("history: %v", err)
		}
		a.Logger.Info("history saved", "path", *out, "rows", len(rows))

	case "news":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		symbol := fs.String("symbol", "", "ticker symbol")
		limit := fs.Int("limit", a.Config.Polygon.NewsLimit, "max articles")
		_ = fs.Parse(args)
		items, err := a.Aggregator.News(ctx, *symbol, *limit)
		if err != nil {
			log.Fatalf("news: %v", err)
		}
		printJSON(items)

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		flag.Usage()
		os.Exit(2)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode: %v", err)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
