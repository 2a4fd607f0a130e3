package main

import (
	"testing"

	"github.com/Dan9191/finance-dashboard/internal/handler"
	"github.com/Dan9191/finance-dashboard/internal/prediction"
)

func TestServerWriteTimeoutCoversBatchPacing(t *testing.T) {
	budget := prediction.WaitBudget(handler.MaxBatchItems)
	if got := serverWriteTimeout(); got <= budget {
		t.Fatalf("write timeout %v leaves no headroom over the batch sleep floor %v", got, budget)
	}
}
