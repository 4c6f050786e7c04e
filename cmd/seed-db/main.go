package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/electrocart/storefront/internal/domain/product"
	"github.com/electrocart/storefront/internal/storage/postgres"
)

const upsertWorkers = 8

func main() {
	var (
		databaseURL  string
		productsFile string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "db/seed/products.json", "path to products JSON file (.json or .json.gz)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	products := postgres.NewProductRepository(pool)

	if err := seedProducts(ctx, products, productsFile); err != nil {
		return errors.Wrap(err, "seed products")
	}

	return nil
}

func seedProducts(ctx context.Context, repo *postgres.ProductRepository, productsFile string) error {
	slog.Info("reading products file", slog.String("path", productsFile))

	f, err := os.Open(productsFile)
	if err != nil {
		return errors.Wrap(err, "open products file")
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(productsFile, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return errors.Wrap(err, "open gzip stream")
		}
		defer gz.Close()
		r = gz
	}

	// Decode the array as a stream so arbitrarily large seed files never
	// need to fit in memory; upserts run on a bounded worker pool.
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan product.Product)

	for range upsertWorkers {
		g.Go(func() error {
			for p := range jobs {
				if err := repo.Upsert(gctx, p); err != nil {
					return err
				}
				slog.Info("upserted product", slog.String("id", p.ID), slog.String("name", p.Name))
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)

		d := jx.Decode(r, 4096)
		return d.Arr(func(d *jx.Decoder) error {
			p, err := decodeProduct(d)
			if err != nil {
				return err
			}
			select {
			case jobs <- p:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})

	return g.Wait()
}

func decodeProduct(d *jx.Decoder) (product.Product, error) {
	var p product.Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Str()
			if err != nil {
				return err
			}
			p.ID = v
		case "name":
			v, err := d.Str()
			if err != nil {
				return err
			}
			p.Name = v
		case "description":
			v, err := d.Str()
			if err != nil {
				return err
			}
			p.Description = v
		case "price":
			n, err := d.Num()
			if err != nil {
				return err
			}
			price, err := decimal.NewFromString(n.String())
			if err != nil {
				return errors.Wrap(err, "parse price")
			}
			p.Price = price
		case "category":
			v, err := d.Str()
			if err != nil {
				return err
			}
			p.Category = v
		case "imageUrl":
			v, err := d.Str()
			if err != nil {
				return err
			}
			p.ImageURL = v
		default:
			return d.Skip()
		}
		return nil
	})
	if err != nil {
		return product.Product{}, errors.Wrap(err, "decode product")
	}
	if p.ID == "" {
		return product.Product{}, errors.New("product is missing an id")
	}
	return p, nil
}
