package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/shan2new/calq-sub001/pkg/calq"
	"github.com/shan2new/calq-sub001/pkg/calq/catalog"
	"github.com/shan2new/calq-sub001/pkg/calq/dashboard"
)

func main() {
	fmt.Println("Starting calq playground demo...")

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	engine := calq.New(calq.WithLogger(logger))
	defer engine.Close()

	ctx := context.Background()
	if err := engine.Initialize(ctx); err != nil {
		log.Fatalf("initialize: %v", err)
	}
	engine.Loader().Preload("volume", "digital", "speed")

	// A few sample conversions across categories.
	samples := []struct {
		value    float64
		category catalog.CategoryID
		from, to catalog.UnitID
	}{
		{100, "temperature", "celsius", "fahrenheit"},
		{1, "length", "mile", "meter"},
		{1024, "digital", "kibibyte", "byte"},
		{75, "mass", "kilogram", "pound"},
	}
	for _, s := range samples {
		res, err := engine.Convert(ctx, s.value, s.category, s.from, s.to, nil)
		if err != nil {
			log.Printf("convert %v %s -> %s: %v", s.value, s.from, s.to, err)
			continue
		}
		fmt.Printf("%v %s = %s\n", s.value, s.from, res.Formatted)
	}

	// Compound: parse a height and convert it to meters + centimeters.
	m, err := engine.ParseCompound(`5'10"`, catalog.FormatHeight)
	if err != nil {
		log.Fatalf("parse: %v", err)
	}
	if m != nil {
		res, err := engine.ConvertCompound(ctx, m, []catalog.UnitID{"meter", "centimeter"}, nil)
		if err != nil {
			log.Fatalf("compound convert: %v", err)
		}
		fmt.Printf("5'10\" = %s (≈ %s)\n", res.Formatted, res.SingleUnitEquivalent.Formatted)
	}

	// Batch: independent conversions through the dispatcher.
	batch, err := engine.ConvertBatch(ctx, []calq.BatchItem{
		{Value: 10, CategoryID: "length", FromUnitID: "kilometer", ToUnitID: "mile"},
		{Value: 350, CategoryID: "temperature", FromUnitID: "fahrenheit", ToUnitID: "gas-mark"},
	})
	if err != nil {
		log.Fatalf("batch: %v", err)
	}
	for _, item := range batch.Items {
		if item.Err != nil {
			fmt.Printf("  item %d failed: %v\n", item.Index, item.Err)
			continue
		}
		fmt.Printf("  item %d: %s\n", item.Index, item.Result.Formatted)
	}

	port := engine.Config().DashboardPort
	fmt.Printf("Playground available at: http://localhost:%d\n", port)
	fmt.Println("API endpoints:")
	fmt.Println("  - GET  /api/categories      - Category listing")
	fmt.Println("  - GET  /api/categories/{id} - Category units")
	fmt.Println("  - POST /api/convert         - One-off conversion")
	fmt.Println("  - GET  /api/search?q=       - Unit search")
	fmt.Println("  - GET  /ws                  - Live event feed")

	server := dashboard.NewServer(port, engine, logger)
	if err := server.Start(); err != nil {
		log.Fatalf("playground: %v", err)
	}
}
