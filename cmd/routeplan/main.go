package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"route-optimizer-service/internal/adapters/loader"
	"route-optimizer-service/internal/adapters/source"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// routeplan optimises a network read from a CSV directory, a YAML/JSON file
// or a URL, and prints one route per driver.
func main() {
	input := flag.String("input", "data/seeds/network.yaml", "CSV directory, YAML/JSON file or http(s) URL")
	drivers := flag.Int("drivers", 3, "number of drivers")
	depot := flag.String("depot", domain.DefaultDepotID, "depot point id")
	workers := flag.Int("workers", 4, "clusters sequenced concurrently")
	asJSON := flag.Bool("json", false, "print the plan as JSON")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	env := "production"
	if *verbose {
		env = "development"
	}
	logger, err := obs.NewLogger(env)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src, err := sourceFor(*input, logger)
	if err != nil {
		logger.Fatal("invalid input", zap.Error(err))
	}

	n, err := src.FetchNetwork(ctx)
	if err != nil {
		logger.Fatal("read network", zap.Error(err))
	}
	if err := n.Validate(*depot); err != nil {
		logger.Fatal("invalid network", zap.Error(err))
	}

	optimizer := services.NewOptimizer(
		services.WithDepot(*depot),
		services.WithWorkers(*workers),
		services.WithLogger(logger),
	)
	routes, err := optimizer.Optimize(ctx, services.OptimizeInput{
		Orders:  n.Orders,
		Drivers: *drivers,
		Points:  n.Points,
		Edges:   n.Edges,
	})
	if err != nil {
		logger.Fatal("optimize", zap.Error(err))
	}

	plan := domain.Plan{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Depot:     *depot,
		Drivers:   *drivers,
		Routes:    routes,
	}
	for _, r := range routes {
		plan.TotalCost += r.TotalCost
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dto.PlanFromDomain(plan)); err != nil {
			logger.Fatal("encode plan", zap.Error(err))
		}
		return
	}
	if err := printPlan(os.Stdout, plan); err != nil {
		logger.Fatal("print plan", zap.Error(err))
	}
}

func sourceFor(input string, logger *zap.Logger) (ports.NetworkSource, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return source.NewHTTPNetworkSource(input, os.Getenv("DATASET_TOKEN"), logger)
	}

	fi, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return loader.CSVDirSource{Dir: input}, nil
	}
	return loader.FileSource{Path: input}, nil
}

func printPlan(w io.Writer, p domain.Plan) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DRIVER\tCOLOR\tCOST\tSEQUENCE\tUNREACHED")
	for _, r := range p.Routes {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\t%s\n",
			r.DriverIndex,
			r.Cluster.Color,
			r.TotalCost,
			strings.Join(r.Sequence, " -> "),
			strings.Join(r.Unreached, ", "),
		)
	}
	fmt.Fprintf(tw, "\t\t%.2f\ttotal\t\n", p.TotalCost)
	return tw.Flush()
}
