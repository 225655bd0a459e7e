package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/shan2new/calq-sub001/pkg/calq"
	"github.com/shan2new/calq-sub001/pkg/calq/catalog"
	"github.com/shan2new/calq-sub001/pkg/calq/dashboard"
)

// IntegrationTestSuite runs comprehensive end-to-end tests over the engine
// and the playground API.
func TestIntegrationSuite(t *testing.T) {
	t.Run("EngineLifecycle", testEngineLifecycle)
	t.Run("ConversionFlow", testConversionFlow)
	t.Run("CompoundFlow", testCompoundFlow)
	t.Run("BatchFlow", testBatchFlow)
	t.Run("EventFlow", testEventFlow)
	t.Run("PlaygroundAPI", testPlaygroundAPI)
	t.Run("ConcurrentOperations", testConcurrentOperations)
}

func testEngineLifecycle(t *testing.T) {
	engine := calq.New()
	defer engine.Close()

	if engine.Loader().IsLoaded("length") {
		t.Error("no category should be resident before Initialize")
	}
	if err := engine.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	for _, id := range []catalog.CategoryID{"length", "mass", "temperature"} {
		if !engine.Loader().IsLoaded(id) {
			t.Errorf("essential category %q not resident after Initialize", id)
		}
	}

	engine.Loader().Preload("volume", "speed")
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if engine.Loader().IsLoaded("volume") && engine.Loader().IsLoaded("speed") {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !engine.Loader().IsLoaded("volume") {
		t.Error("preloaded category never became resident")
	}
}

func testConversionFlow(t *testing.T) {
	engine := calq.New()
	defer engine.Close()
	ctx := context.Background()
	if err := engine.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	res, err := engine.Convert(ctx, 100, "temperature", "celsius", "fahrenheit", nil)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if res.Value != 212 || res.Formatted != "212 °F" {
		t.Errorf("100°C = %v %q, want 212 \"212 °F\"", res.Value, res.Formatted)
	}

	// Lazily loaded category on first touch.
	res, err = engine.Convert(ctx, 2048, "digital", "mebibyte", "gibibyte", nil)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if res.Value != 2 {
		t.Errorf("2048 MiB = %v GiB, want 2", res.Value)
	}
	if !engine.Loader().IsLoaded("digital") {
		t.Error("digital should be resident after first conversion")
	}
}

func testCompoundFlow(t *testing.T) {
	engine := calq.New()
	defer engine.Close()
	ctx := context.Background()
	if err := engine.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	m, err := engine.ParseCompound(`5'10"`, catalog.FormatHeight)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m == nil {
		t.Fatal("parse returned nil for valid input")
	}

	res, err := engine.ConvertCompound(ctx, m, []catalog.UnitID{"meter", "centimeter"}, nil)
	if err != nil {
		t.Fatalf("compound convert: %v", err)
	}
	if res.Formatted != "1 m 77.8 cm" {
		t.Errorf("Formatted = %q, want %q", res.Formatted, "1 m 77.8 cm")
	}
	if math.Abs(res.SingleUnitEquivalent.Value-1.778) > 1e-9 {
		t.Errorf("equivalent = %v m, want 1.778", res.SingleUnitEquivalent.Value)
	}

	if m, err := engine.ParseCompound("not a height", catalog.FormatHeight); err != nil || m != nil {
		t.Errorf("unparseable input should yield (nil, nil), got (%v, %v)", m, err)
	}
}

func testBatchFlow(t *testing.T) {
	engine := calq.New()
	defer engine.Close()
	ctx := context.Background()
	if err := engine.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	res, err := engine.ConvertBatch(ctx, []calq.BatchItem{
		{Value: 10, CategoryID: "length", FromUnitID: "kilometer", ToUnitID: "mile"},
		{Value: 1, CategoryID: "length", FromUnitID: "meter", ToUnitID: "cubit"},
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(res.Items))
	}
	if res.Items[0].Err != nil {
		t.Errorf("valid item failed: %v", res.Items[0].Err)
	}
	if res.Items[1].Err == nil {
		t.Error("invalid item did not fail")
	}
}

func testEventFlow(t *testing.T) {
	engine := calq.New()
	defer engine.Close()
	ctx := context.Background()
	if err := engine.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	events := make(chan calq.Event, 16)
	engine.Events().Subscribe(calq.EventConversion, calq.EventListenerFunc(func(evt calq.Event) {
		events <- evt
	}))

	if _, err := engine.Convert(ctx, 1, "length", "meter", "foot", nil); err != nil {
		t.Fatal(err)
	}
	select {
	case evt := <-events:
		if evt.CategoryID != "length" {
			t.Errorf("event category = %q, want length", evt.CategoryID)
		}
	case <-time.After(time.Second):
		t.Fatal("no conversion event observed")
	}
}

const testPlaygroundPort = 19173

func testPlaygroundAPI(t *testing.T) {
	engine := calq.New()
	defer engine.Close()
	if err := engine.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}

	server := dashboard.NewServer(testPlaygroundPort, engine, nil)
	go server.Start()
	defer server.Stop()

	base := fmt.Sprintf("http://localhost:%d", testPlaygroundPort)
	waitForServer(t, base+"/api/categories")

	t.Run("Categories", func(t *testing.T) {
		resp, err := http.Get(base + "/api/categories")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var categories []map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
			t.Fatal(err)
		}
		if len(categories) < 10 {
			t.Errorf("got %d categories, want at least 10", len(categories))
		}
	})

	t.Run("CategoryDetail", func(t *testing.T) {
		resp, err := http.Get(base + "/api/categories/length")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var detail struct {
			Base  string                   `json:"base"`
			Units []map[string]interface{} `json:"units"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
			t.Fatal(err)
		}
		if detail.Base != "meter" {
			t.Errorf("base = %q, want meter", detail.Base)
		}
		if len(detail.Units) != 11 {
			t.Errorf("got %d units, want 11", len(detail.Units))
		}
	})

	t.Run("Convert", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{
			"value": 1, "category": "length", "from": "mile", "to": "meter",
		})
		resp, err := http.Post(base+"/api/convert", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d", resp.StatusCode)
		}
		var out struct {
			Value float64 `json:"value"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		if out.Value != 1609.344 {
			t.Errorf("value = %v, want 1609.344", out.Value)
		}
	})

	t.Run("ConvertRejectsUnknownUnit", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{
			"value": 1, "category": "length", "from": "mile", "to": "cubit",
		})
		resp, err := http.Post(base+"/api/convert", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("status %d, want 422", resp.StatusCode)
		}
	})

	t.Run("Search", func(t *testing.T) {
		resp, err := http.Get(base + "/api/search?q=meter&limit=3")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var results []map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
			t.Fatal(err)
		}
		if len(results) != 3 {
			t.Fatalf("got %d results, want 3", len(results))
		}
		if results[0]["unit"] != "meter" {
			t.Errorf("top result = %v, want meter", results[0]["unit"])
		}
	})
}

func waitForServer(t *testing.T, url string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("playground server never came up")
}

func testConcurrentOperations(t *testing.T) {
	engine := calq.New()
	defer engine.Close()
	ctx := context.Background()
	if err := engine.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := engine.Convert(ctx, float64(i), "length", "meter", "foot", nil); err != nil {
				errs <- err
			}
			if _, err := engine.SearchUnits(ctx, "gram", 5); err != nil {
				errs <- err
			}
			if _, err := engine.ConvertBatch(ctx, []calq.BatchItem{
				{Value: float64(i), CategoryID: "time", FromUnitID: "hour", ToUnitID: "minute"},
			}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent operation failed: %v", err)
	}
}
