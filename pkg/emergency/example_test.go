package emergency_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jihwankim/fazz/pkg/emergency"
)

// Example demonstrates the SIGINT/SIGTERM cleanup path a fuzz run registers
// around the target controller (spec.md §5: "there is no user-facing
// cancellation besides SIGINT on the fuzzer itself, which must still run
// target cleanup").
func Example() {
	controller := emergency.New()

	controller.OnStop(func() {
		fmt.Println("stop triggered, terminating target")
		fmt.Println("cleanup complete")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	controller.Start(ctx)

	fmt.Println("watching for SIGINT/SIGTERM...")

	select {
	case <-controller.StopChannel():
		fmt.Println("stop detected via channel")
	case <-time.After(200 * time.Millisecond):
		fmt.Println("no stop triggered (timeout)")
	}

	// Output:
	// watching for SIGINT/SIGTERM...
	// no stop triggered (timeout)
}
