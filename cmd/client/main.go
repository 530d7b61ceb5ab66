package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	personapp "github.com/registro/client/internal/application/person"
	professionapp "github.com/registro/client/internal/application/profession"
	"github.com/registro/client/internal/infrastructure/cache"
	"github.com/registro/client/internal/infrastructure/config"
	"github.com/registro/client/internal/infrastructure/gateway"
	"github.com/registro/client/internal/infrastructure/logger"
	"github.com/registro/client/internal/infrastructure/repository"
	"github.com/registro/client/internal/infrastructure/session"
	"github.com/registro/client/internal/query"
	"go.uber.org/zap"
)

const usage = `usage: client <command> [args]

commands:
  token <value>            store a bearer token for subsequent calls
  persons [skip] [limit]   list persons (default 0 100)
  person <id>              show one person
  person-search <text>     search persons
  stats                    show the dashboard aggregate
  professions [page] [size]  list professions (default 1 50)
  professions-all          list the full profession catalog
  profession <id>          show one profession
  profession-search <text> search professions
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	store := session.NewFileStore(cfg.Session.Path, session.Keys{
		Token:        cfg.Session.TokenKey,
		RefreshToken: cfg.Session.RefreshTokenKey,
		User:         cfg.Session.UserKey,
	}, log)

	if os.Args[1] == "token" {
		if len(os.Args) != 3 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		if err := store.SetToken(os.Args[2]); err != nil {
			log.Fatal("Failed to store token", zap.Error(err))
		}
		return
	}

	if store.TokenExpired(time.Now()) {
		log.Warn("No valid session token; requests will be unauthenticated")
	}

	reg := prometheus.NewRegistry()
	client := gateway.New(cfg.API.URL,
		gateway.WithTimeout(cfg.API.Timeout),
		gateway.WithTokenStore(store),
		gateway.WithOnUnauthorized(func() {
			log.Warn("Session expired, please authenticate again")
		}),
		gateway.WithLogger(log),
		gateway.WithMetrics(gateway.NewMetrics(reg)),
	)

	personService := personapp.NewService(repository.NewPersonRepository(client, log), log)
	professionService := professionapp.NewService(repository.NewProfessionRepository(client, log), log)

	queryCache := cache.NewQueryCache(
		cache.WithWindows(cfg.Cache.StaleAfter, cfg.Cache.EvictAfter),
		cache.WithReadRetries(cfg.Cache.ReadRetries),
		cache.WithLogger(log),
		cache.WithMetrics(cache.NewMetrics(reg)),
	)
	defer func() {
		_ = queryCache.Close()
	}()

	persons := query.NewPersonQueries(personService, queryCache)
	professions := query.NewProfessionQueries(professionService, queryCache)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()

	if err := run(ctx, os.Args[1:], persons, professions); err != nil {
		log.Fatal("Command failed", zap.String("command", os.Args[1]), zap.Error(err))
	}
}

func run(ctx context.Context, args []string, persons *query.PersonQueries, professions *query.ProfessionQueries) error {
	switch args[0] {
	case "persons":
		skip, limit := intArg(args, 1, 0), intArg(args, 2, 100)
		list, err := persons.List(ctx, skip, limit)
		if err != nil {
			return err
		}
		return print(list)

	case "person":
		id, err := idArg(args)
		if err != nil {
			return err
		}
		p, err := persons.Get(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Println("not found")
			return nil
		}
		return print(p)

	case "person-search":
		if len(args) < 2 {
			return fmt.Errorf("person-search needs a query")
		}
		found, err := persons.Search(ctx, args[1])
		if err != nil {
			return err
		}
		return print(found)

	case "stats":
		stats, err := persons.Stats(ctx)
		if err != nil {
			return err
		}
		return print(stats)

	case "professions":
		page, size := intArg(args, 1, 1), intArg(args, 2, 50)
		list, err := professions.List(ctx, page, size)
		if err != nil {
			return err
		}
		return print(list)

	case "professions-all":
		all, err := professions.All(ctx)
		if err != nil {
			return err
		}
		return print(all)

	case "profession":
		id, err := idArg(args)
		if err != nil {
			return err
		}
		p, err := professions.Get(ctx, id)
		if err != nil {
			return err
		}
		return print(p)

	case "profession-search":
		if len(args) < 2 {
			return fmt.Errorf("profession-search needs a query")
		}
		found, err := professions.Search(ctx, args[1])
		if err != nil {
			return err
		}
		return print(found)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func intArg(args []string, idx, fallback int) int {
	if len(args) <= idx {
		return fallback
	}
	n, err := strconv.Atoi(args[idx])
	if err != nil {
		return fallback
	}
	return n
}

func idArg(args []string) (int64, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s needs an id", args[0])
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[1])
	}
	return id, nil
}

func print(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
