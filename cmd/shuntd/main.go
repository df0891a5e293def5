package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/zephyrtronium/shunt"
	"github.com/zephyrtronium/shunt/internal/history"
	"github.com/zephyrtronium/shunt/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		addr, histname string
		rassoc         bool
		maxmsg         int64
	)
	flag.StringVar(&addr, "addr", "localhost:8080", "listen address")
	flag.StringVar(&histname, "history", "", "SQLite file to record evaluations in")
	flag.BoolVar(&rassoc, "rassoc", false, "make ^ right-associative")
	flag.Int64Var(&maxmsg, "maxmsg", 4<<10, "largest accepted request in bytes")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := server.Config{MaxMessage: maxmsg, Log: log.Default()}
	if rassoc {
		cfg.Options = append(cfg.Options, shunt.RightAssocPow())
	}
	if histname != "" {
		h, err := history.Open(ctx, histname)
		if err != nil {
			return err
		}
		defer h.Close()
		cfg.History = h
	}

	log.Printf("listening on %s", addr)
	err := server.New(cfg).ListenAndServe(ctx, addr)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
