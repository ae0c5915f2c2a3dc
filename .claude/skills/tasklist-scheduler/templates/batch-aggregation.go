// Package main demonstrates the simple aggregation path
// Use BatchRunner when dependency ordering and priority are unnecessary:
// run everything concurrently and report every outcome
package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	tasklist "github.com/markhazleton/TaskListProcessor-sub003"
)

func main() {
	runner := tasklist.NewBatchRunner(tasklist.NewTelemetryCollector(), nil)

	// WaitAll blocks until every operation finishes; a failing member
	// never discards sibling results, and one aggregate error is logged
	runner.WaitAll(context.Background(),
		tasklist.NamedOperation{Name: "forecast", Run: func(ctx context.Context) (any, error) {
			time.Sleep(30 * time.Millisecond)
			return "sunny, 21C", nil
		}},
		tasklist.NamedOperation{Name: "activities", Run: func(ctx context.Context) (any, error) {
			return []string{"hiking", "kayaking"}, nil
		}},
		tasklist.NamedOperation{Name: "traffic", Run: func(ctx context.Context) (any, error) {
			return nil, errors.New("upstream timeout")
		}},
	)

	for _, result := range runner.Collector().Results() {
		fmt.Printf("%s successful=%v data=%v\n", result.Name, result.IsSuccessful(), result.Data)
	}
	for _, line := range runner.Collector().Entries() {
		fmt.Println(line)
	}
}
